// Package notify announces playback on the desktop.
package notify

// Message is the content of a desktop notification.
type Message struct {
	Summary string
	Body    string
	Icon    string // image path or icon name, may be empty
}

// Notifier shows one notification at a time: each Show replaces the
// notification left by the previous one.
type Notifier interface {
	Show(m Message) error
	// Dismiss closes the current notification, if any.
	Dismiss() error
}

// nopNotifier is used where no notification server is reachable.
type nopNotifier struct{}

func (nopNotifier) Show(Message) error {
	return nil
}

func (nopNotifier) Dismiss() error {
	return nil
}
