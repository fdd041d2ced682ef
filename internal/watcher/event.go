package watcher

// EventType is the kind of change observed on a watched file.
type EventType int

const (
	// EventChanged means the file was written, created or replaced.
	EventChanged EventType = iota
	// EventRemoved means the file no longer exists after settling.
	EventRemoved
)

func (e EventType) String() string {
	switch e {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is emitted once a burst of filesystem activity on a file has settled.
type Event struct {
	Type EventType
	Path string
}
