// Package reminder schedules the put-them-back desktop notification that
// fires after the aligners have been out for too long.
package reminder

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/pterm/pterm"
)

const (
	notificationTitle = "Time to put them back"
	notificationBody  = "Your aligners have been out for a while. " +
		"Put the trays back in when you are done."
)

// Scheduler is the reminder collaborator contract. At most one reminder is
// ever outstanding; scheduling implicitly cancels any prior one.
type Scheduler interface {
	Schedule(delay time.Duration) error
	CancelAll()
}

// Notifier schedules an in-process timer that raises a desktop notification
// when it fires.
type Notifier struct {
	mu      sync.Mutex
	pending *time.Timer
	enabled bool
}

// NewNotifier returns a Notifier. When enabled is false, Schedule is a
// no-op so the tracker can stay oblivious to the notification setting.
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

func (n *Notifier) Schedule(delay time.Duration) error {
	n.CancelAll()

	if !n.enabled {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = time.AfterFunc(delay, Fire)

	return nil
}

func (n *Notifier) CancelAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}

// Fire raises the reminder notification immediately.
func Fire() {
	err := beeep.Notify(notificationTitle, notificationBody, "")
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}
