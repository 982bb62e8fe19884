package dashboard

import "time"

const NotificationTimeout = 4 * time.Second

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

type Notification struct {
	Message string
	Level   Level
}

// NotificationCenter holds at most one message. Show overwrites whatever is
// visible and Hide clears it, whichever Show scheduled the hide. Two
// notifications inside one timeout window therefore hide the second one
// early.
type NotificationCenter struct {
	current Notification
	visible bool
	shown   int
}

func (n *NotificationCenter) Show(message string, level Level) {
	n.current = Notification{Message: message, Level: level}
	n.visible = true
	n.shown++
}

func (n *NotificationCenter) Success(message string) { n.Show(message, LevelSuccess) }

func (n *NotificationCenter) Error(message string) { n.Show(message, LevelError) }

// Result shows message as success or error depending on ok.
func (n *NotificationCenter) Result(message string, ok bool) {
	if ok {
		n.Success(message)
		return
	}
	n.Error(message)
}

func (n *NotificationCenter) Hide() {
	n.visible = false
}

func (n *NotificationCenter) Current() (Notification, bool) {
	return n.current, n.visible
}

// Shown counts every Show call.
func (n *NotificationCenter) Shown() int {
	return n.shown
}
