// Package app defines the traytime command-line interface.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"traytime/config"
)

const (
	envNoColor         = "NO_COLOR"
	envTraytimeNoColor = "TRAYTIME_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func beforeAction(ctx *cli.Context) error {
	if _, ok := os.LookupEnv(envNoColor); ok {
		disableStyling()
	}

	if _, ok := os.LookupEnv(envTraytimeNoColor); ok {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	return nil
}

// Get retrieves the traytime app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "traytime",
		Usage: `
		Traytime tracks how long your orthodontic aligners spend out of your
		mouth against a daily budget, logs removal sessions, and keeps your
		tray replacement plan and cleaning routine on schedule.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "toggle",
				Usage:  "Take the aligners out, or put them back in. Hygiene flags attach to the session on reinsert",
				Action: toggleAction,
				Flags: []cli.Flag{
					brushingFlag,
					flossingFlag,
					mouthwashFlag,
					taskFlag,
				},
			},
			{
				Name:   "watch",
				Usage:  "Show a live countdown of the remaining out time. Press ENTER to put the aligners back in",
				Action: watchAction,
				Flags: []cli.Flag{
					brushingFlag,
					flossingFlag,
					mouthwashFlag,
					taskFlag,
				},
			},
			{
				Name:   "log",
				Usage:  "List removal sessions for a day, or the full history",
				Action: logAction,
				Flags: []cli.Flag{
					dateFlag,
					allFlag,
					jsonFlag,
				},
			},
			{
				Name:   "backfill",
				Usage:  "Record a past removal session manually",
				Action: backfillAction,
				Flags: []cli.Flag{
					startFlag,
					endFlag,
					brushingFlag,
					flossingFlag,
					mouthwashFlag,
					taskFlag,
				},
			},
			{
				Name:   "edit",
				Usage:  "Edit the times or hygiene data of a session",
				Action: editAction,
				Flags: []cli.Flag{
					idFlag,
					startFlag,
					endFlag,
					brushingFlag,
					flossingFlag,
					mouthwashFlag,
					taskFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete a session",
				Action: deleteAction,
				Flags:  []cli.Flag{idFlag},
			},
			{
				Name:   "stats",
				Usage:  "Report out-time statistics for a day, week, or month",
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					dateFlag,
					yearFlag,
					monthFlag,
					jsonFlag,
				},
			},
			{
				Name:  "tasks",
				Usage: "Manage recurring cleaning tasks",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List cleaning tasks. --all includes deactivated ones",
						Action: listTasksAction,
						Flags:  []cli.Flag{allFlag},
					},
					{
						Name:   "add",
						Usage:  "Add a cleaning task",
						Action: addTaskAction,
						Flags: []cli.Flag{
							nameFlag,
							timeFlag,
							brushingFlag,
							flossingFlag,
							mouthwashFlag,
						},
					},
					{
						Name:   "edit",
						Usage:  "Edit a cleaning task",
						Action: editTaskAction,
						Flags: []cli.Flag{
							idFlag,
							nameFlag,
							timeFlag,
							brushingFlag,
							flossingFlag,
							mouthwashFlag,
						},
					},
					{
						Name:   "delete",
						Usage:  "Deactivate a cleaning task",
						Action: deleteTaskAction,
						Flags:  []cli.Flag{idFlag},
					},
					{
						Name:   "purge",
						Usage:  "Permanently delete a cleaning task",
						Action: purgeTaskAction,
						Flags:  []cli.Flag{idFlag},
					},
				},
			},
			{
				Name:  "plan",
				Usage: "Manage the tray replacement plan",
				Subcommands: []*cli.Command{
					{
						Name:   "setup",
						Usage:  "Generate a fresh plan for both arches",
						Action: setupPlanAction,
						Flags: []cli.Flag{
							upperCountFlag,
							lowerCountFlag,
							daysPerTrayFlag,
							startFlag,
						},
					},
					{
						Name:   "show",
						Usage:  "Show the tray schedule",
						Action: showPlanAction,
					},
					{
						Name:   "set-date",
						Usage:  "Move one tray's start date, shifting all later trays by the same amount",
						Action: setTrayDateAction,
						Flags: []cli.Flag{
							upperArchFlag,
							trayFlag,
							dateFlag,
						},
					},
					{
						Name:   "current",
						Usage:  "Record which tray is currently in use",
						Action: setCurrentTrayAction,
						Flags: []cli.Flag{
							upperArchFlag,
							trayFlag,
						},
					},
				},
			},
			{
				Name:   "set",
				Usage:  "Change tracker settings (goal, reset hour, reminder delay, minimum session)",
				Action: setAction,
				Flags: []cli.Flag{
					goalFlag,
					resetHourFlag,
					reminderDelayFlag,
					minSessionFlag,
				},
			},
			{
				Name:   "reset-db",
				Usage:  "Delete all sessions and cleaning tasks",
				Action: resetDBAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			disableNotificationFlag,
			goalFlag,
			resetHourFlag,
			reminderDelayFlag,
			minSessionFlag,
		},
		Action: statusAction,
		Before: beforeAction,
	}
}
