package application

import (
	"context"
	"log"
	"time"

	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// Watcher polls the clipboard, classifies new content and hands matches to
// the deliverer. It is the only component whose lifetime spans the whole
// process; everything that happens inside one tick is recoverable.
type Watcher struct {
	clipboard ports.Clipboard
	deliverer ports.Deliverer
	journal   ports.Journal // optional; nil disables journaling
	tags      domain.TagMap
	policy    domain.UnknownTagPolicy
	who       string
	interval  time.Duration
	logf      func(format string, args ...any)
}

// WatcherOptions configures a Watcher. Clipboard and Deliverer are
// required; the rest have working defaults.
type WatcherOptions struct {
	Clipboard  ports.Clipboard
	Deliverer  ports.Deliverer
	Journal    ports.Journal
	Tags       domain.TagMap
	UnknownTag domain.UnknownTagPolicy
	Who        string
	Interval   time.Duration
	Logf       func(format string, args ...any)
}

// NewWatcher creates a Watcher from options.
func NewWatcher(opts WatcherOptions) *Watcher {
	w := &Watcher{
		clipboard: opts.Clipboard,
		deliverer: opts.Deliverer,
		journal:   opts.Journal,
		tags:      opts.Tags,
		policy:    opts.UnknownTag,
		who:       opts.Who,
		interval:  opts.Interval,
		logf:      opts.Logf,
	}
	if w.tags == nil {
		w.tags = domain.DefaultTagMap()
	}
	if w.interval <= 0 {
		w.interval = 500 * time.Millisecond
	}
	if w.logf == nil {
		w.logf = log.Printf
	}
	return w
}

// Run polls until ctx is cancelled. It has no other exit: every error
// inside a tick is logged and absorbed at the tick boundary.
//
// lastSeen lives on this stack frame, not in package state. nil means
// "nothing observed yet" and is distinct from any real clipboard value,
// including the empty string.
func (w *Watcher) Run(ctx context.Context) error {
	w.logf("[watching] clipboard watcher started")

	var lastSeen *string
	for {
		lastSeen = w.tick(ctx, lastSeen)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.interval):
		}
	}
}

// tick runs one poll iteration and returns the new last-seen value.
// A given clipboard value is classified and attempted at most once:
// lastSeen advances even when classification or delivery fails.
func (w *Watcher) tick(ctx context.Context, lastSeen *string) *string {
	current, err := w.clipboard.Read()
	if err != nil {
		// Fail-soft: the clipboard is unavailable this tick.
		w.logf("[error] clipboard read failed: %v", err)
		return lastSeen
	}

	if lastSeen != nil && current == *lastSeen {
		return lastSeen
	}

	entry := domain.Classify(current, w.tags, w.policy)
	if entry == nil {
		return &current
	}

	outcome := w.deliverer.Deliver(ctx, *entry)
	w.record(*entry, outcome)
	if outcome.OK() {
		w.logf("[sent] %s: %s", entry.Tag, entry.Text)
	} else {
		w.logf("[error] %s", outcome)
	}
	return &current
}

func (w *Watcher) record(entry domain.ClassifiedEntry, outcome domain.Outcome) {
	if w.journal == nil {
		return
	}
	if err := w.journal.Record(entry, w.who, outcome); err != nil {
		w.logf("[error] journal write failed: %v", err)
	}
}
