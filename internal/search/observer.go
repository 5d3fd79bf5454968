package search

// HopStats describes the state of a search after one completed hop
type HopStats struct {
	Hop          int // hop number, starting at 1
	Seen         int // cumulative distinct URLs seen
	NextFrontier int // paths to expand at the next hop
	Expanded     int // pages fetched during this hop
}

// Observer receives per-hop progress from an Engine
type Observer interface {
	HopCompleted(stats HopStats)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(stats HopStats)

// HopCompleted calls f(stats)
func (f ObserverFunc) HopCompleted(stats HopStats) {
	f(stats)
}

type multiObserver []Observer

func (m multiObserver) HopCompleted(stats HopStats) {
	for _, o := range m {
		o.HopCompleted(stats)
	}
}

// Observers fans out hop events to every non-nil observer
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}
