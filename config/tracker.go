package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var trackerCfg = &TrackerConfig{}

var once sync.Once

var (
	errReadingInput = errors.New(
		"An error occurred while reading input. Please try again",
	)
	errExpectedInteger = errors.New(
		"Expected an integer greater than or equal to zero",
	)
	errInitFailed = errors.New(
		"Unable to initialise traytime settings from the configuration file",
	)
	errResetHourTooLarge = errors.New(
		"The day reset hour must be between 0 and 23",
	)
)

const (
	defaultGoalHours       = 22
	defaultGoalMinutes     = 0
	defaultDayResetHour    = 0
	defaultReminderMinutes = 60
	defaultMinSessionSecs  = 10
)

const (
	configGoalHours       = "daily_goal_hours"
	configGoalMinutes     = "daily_goal_minutes"
	configDayResetHour    = "day_reset_hour"
	configReminderMinutes = "reminder_delay_mins"
	configMinSessionSecs  = "min_session_secs"
	configNotify          = "notify"
	configDarkTheme       = "dark_theme"
	config24HourClock     = "24hr_clock"
)

// TrackerConfig represents the program configuration derived from the config
// file and command-line arguments. The daily goal is the target wear time;
// the out-time budget is its complement of a 24-hour day.
type TrackerConfig struct {
	Stderr               io.Writer `json:"-"`
	Stdout               io.Writer `json:"-"`
	Stdin                io.Reader `json:"-"`
	PathToConfig         string    `json:"path_to_config"`
	DailyGoalHours       int       `json:"daily_goal_hours"`
	DailyGoalMinutes     int       `json:"daily_goal_minutes"`
	DayResetHour         int       `json:"day_reset_hour"`
	ReminderDelayMinutes int       `json:"reminder_delay_mins"`
	MinSessionSeconds    int       `json:"min_session_secs"`
	Notify               bool      `json:"notify"`
	DarkTheme            bool      `json:"dark_theme"`
	TwentyFourHourClock  bool      `json:"twenty_four_hour_clock"`
}

func numberPrompt(reader *bufio.Reader, defaultVal int) (int, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return 0, errReadingInput
	}

	reader.Reset(os.Stdin)

	input = strings.TrimSpace(strings.TrimSuffix(input, "\n"))
	if input == "" {
		return defaultVal, nil
	}

	num, err := strconv.Atoi(input)
	if err != nil {
		return 0, errExpectedInteger
	}

	if num < 0 {
		return 0, errExpectedInteger
	}

	return num, nil
}

// prompt allows the user to state their preferred wear goal. It is run only
// when a configuration file is not already present (e.g. on first run).
func prompt() {
	pterm.Info.Printfln(
		"Your preferences will be saved to: %s\n\n",
		trackerCfg.PathToConfig,
	)

	_ = pterm.NewBulletListFromString(`Follow the prompts below to configure traytime for the first time.
Type your preferred value, or press ENTER to accept the defaults.
Edit the configuration file (traytime edit-config) to change any settings, or use command line arguments (see the --help flag)`, " ").
		Render()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Press ENTER to continue")

	_, _ = reader.ReadString('\n')

	for {
		if !viper.IsSet(configGoalHours) {
			fmt.Printf(
				"\nDaily wear goal, hours part (default: %s): ",
				pterm.Green(defaultGoalHours),
			)

			num, err := numberPrompt(reader, defaultGoalHours)
			if err != nil {
				pterm.Error.Println(err)
				continue
			}

			viper.Set(configGoalHours, num)
		}

		if !viper.IsSet(configGoalMinutes) {
			fmt.Printf(
				"Daily wear goal, minutes part (default: %s): ",
				pterm.Green(defaultGoalMinutes),
			)

			num, err := numberPrompt(reader, defaultGoalMinutes)
			if err != nil {
				pterm.Error.Println(err)
				continue
			}

			viper.Set(configGoalMinutes, num)
		}

		break
	}
}

// initTrackerConfig reads the configuration file, creating it with defaults
// if it does not exist yet.
func initTrackerConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")

	trackerCfg.PathToConfig = configFilePath

	viper.AddConfigPath(filepath.Dir(trackerCfg.PathToConfig))

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createTrackerConfig()
		}

		return err
	}

	return nil
}

func setTrackerConfig(ctx *cli.Context) {
	trackerCfg.Stderr = os.Stderr
	trackerCfg.Stdout = os.Stdout
	trackerCfg.Stdin = os.Stdin

	// set from config file
	trackerCfg.DailyGoalHours = viper.GetInt(configGoalHours)
	trackerCfg.DailyGoalMinutes = viper.GetInt(configGoalMinutes)
	trackerCfg.DayResetHour = viper.GetInt(configDayResetHour)
	trackerCfg.ReminderDelayMinutes = viper.GetInt(configReminderMinutes)
	trackerCfg.MinSessionSeconds = viper.GetInt(configMinSessionSecs)
	trackerCfg.Notify = viper.GetBool(configNotify)
	trackerCfg.TwentyFourHourClock = viper.GetBool(config24HourClock)

	if viper.IsSet(configDarkTheme) {
		trackerCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		trackerCfg.DarkTheme = true
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		trackerCfg.Notify = false
	}

	if ctx.IsSet("reset-hour") {
		hour := int(ctx.Uint("reset-hour"))
		if hour > 23 {
			pterm.Error.Println(errResetHourTooLarge)
			os.Exit(1)
		}

		trackerCfg.DayResetHour = hour
	}

	if ctx.IsSet("reminder-delay") {
		trackerCfg.ReminderDelayMinutes = int(ctx.Uint("reminder-delay"))
	}

	if ctx.IsSet("min-session") {
		trackerCfg.MinSessionSeconds = int(ctx.Uint("min-session"))
	}

	goal := ctx.String("goal")
	if goal != "" {
		hours, minutes, err := ParseGoal(goal)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}

		trackerCfg.DailyGoalHours = hours
		trackerCfg.DailyGoalMinutes = minutes
	}
}

// ParseGoal interprets a wear goal given as "22h30m", "22:30", or plain
// hours ("22").
func ParseGoal(goal string) (hours, minutes int, err error) {
	errInvalidGoal := fmt.Errorf(
		"invalid goal %q: expected a value like 22h30m, 22:30, or 22",
		goal,
	)

	s := strings.TrimSpace(strings.ToLower(goal))
	s = strings.ReplaceAll(s, "h", ":")
	s = strings.TrimSuffix(s, "m")

	parts := strings.Split(strings.TrimSuffix(s, ":"), ":")
	if len(parts) == 0 || len(parts) > 2 {
		return 0, 0, errInvalidGoal
	}

	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errInvalidGoal
	}

	if len(parts) == 2 {
		minutes, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, errInvalidGoal
		}
	}

	total := hours*60 + minutes
	if hours < 0 || minutes < 0 || minutes > 59 || total >= 24*60 {
		return 0, 0, errInvalidGoal
	}

	return hours, minutes, nil
}

// createTrackerConfig prompts the user for key settings and saves the
// results to the user's config directory.
func createTrackerConfig() error {
	if os.Getenv("TRAYTIME_ENV") != "testing" {
		prompt()
	}

	trackerDefaults()

	err := viper.WriteConfigAs(trackerCfg.PathToConfig)
	if err != nil {
		return err
	}

	fmt.Println()
	pterm.Success.Printfln(
		"Your settings have been saved. Thanks for using traytime!\n\n",
	)

	return nil
}

// trackerDefaults sets the program's default configuration values.
func trackerDefaults() {
	viper.SetDefault(configGoalHours, defaultGoalHours)
	viper.SetDefault(configGoalMinutes, defaultGoalMinutes)
	viper.SetDefault(configDayResetHour, defaultDayResetHour)
	viper.SetDefault(configReminderMinutes, defaultReminderMinutes)
	viper.SetDefault(configMinSessionSecs, defaultMinSessionSecs)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(config24HourClock, false)
}

// Tracker initializes and returns the tracker configuration. The
// initialization is done just once no matter how many times it is called.
func Tracker(ctx *cli.Context) *TrackerConfig {
	once.Do(func() {
		err := initTrackerConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setTrackerConfig(ctx)
	})

	return trackerCfg
}
