package dashboard

import "time"

const (
	FastInterval = 2 * time.Second
	SlowInterval = 5 * time.Second
)

// Poller decides what each timer tick refreshes. The slow timer always
// refreshes status; the fast timer only does work while the console tab is
// active. Neither has backoff: a failed tick changes nothing for the next one.
type Poller struct {
	Fast time.Duration
	Slow time.Duration
}

func NewPoller(fast, slow time.Duration) Poller {
	if fast <= 0 {
		fast = FastInterval
	}
	if slow <= 0 {
		slow = SlowInterval
	}
	return Poller{Fast: fast, Slow: slow}
}

func (p Poller) FastRefreshes(active Tab) []Refresh {
	if active != TabConsole {
		return nil
	}
	return []Refresh{RefreshConsole, RefreshHealth}
}

func (p Poller) SlowRefreshes() []Refresh {
	return []Refresh{RefreshStatus}
}
