package watcher

import "time"

// Options configures the file watcher behavior.
type Options struct {
	// SettleDelay is how long a file must be quiet before an event is emitted.
	// Editors often write a file in several steps (truncate, write, rename).
	SettleDelay time.Duration
	// BufferSize is the capacity of the Events channel.
	BufferSize int
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = 250 * time.Millisecond
	}
	if o.BufferSize <= 0 {
		o.BufferSize = 16
	}
}
