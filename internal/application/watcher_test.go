package application

import (
	"context"
	"errors"
	"testing"

	"cliprelay/internal/domain"
)

type clipboardStep struct {
	content string
	err     error
}

// scriptedClipboard replays a fixed sequence of reads, repeating the
// final step once the script runs out.
type scriptedClipboard struct {
	steps []clipboardStep
	next  int
}

func (c *scriptedClipboard) Read() (string, error) {
	step := c.steps[c.next]
	if c.next < len(c.steps)-1 {
		c.next++
	}
	return step.content, step.err
}

type recordingDeliverer struct {
	outcome domain.Outcome
	entries []domain.ClassifiedEntry
}

func (d *recordingDeliverer) Deliver(_ context.Context, entry domain.ClassifiedEntry) domain.Outcome {
	d.entries = append(d.entries, entry)
	return d.outcome
}

type recordingJournal struct {
	records []domain.Record
	err     error
}

func (j *recordingJournal) Record(entry domain.ClassifiedEntry, who string, outcome domain.Outcome) error {
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, domain.Record{
		Tag:     entry.Tag,
		Section: entry.Section,
		Text:    entry.Text,
		Who:     who,
		Status:  outcome.Status,
		Detail:  outcome.Detail,
	})
	return nil
}

func (j *recordingJournal) Recent(int) ([]domain.Record, error) { return j.records, nil }
func (j *recordingJournal) Close() error                        { return nil }

func newTestWatcher(clip *scriptedClipboard, del *recordingDeliverer, journal *recordingJournal) *Watcher {
	opts := WatcherOptions{
		Clipboard: clip,
		Deliverer: del,
		Who:       "LB",
		Logf:      func(string, ...any) {},
	}
	if journal != nil {
		opts.Journal = journal
	}
	return NewWatcher(opts)
}

func runTicks(w *Watcher, n int) {
	var lastSeen *string
	for range n {
		lastSeen = w.tick(context.Background(), lastSeen)
	}
}

func TestWatcherDeliversNewContentOnce(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "todo: Buy milk"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}

	runTicks(newTestWatcher(clip, del, nil), 5)

	if len(del.entries) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(del.entries))
	}
	want := domain.ClassifiedEntry{Tag: "todo", Section: "TODO", Text: "Buy milk"}
	if del.entries[0] != want {
		t.Errorf("delivered %+v, expected %+v", del.entries[0], want)
	}
}

func TestWatcherNoRetryAfterFailedDelivery(t *testing.T) {
	// A failed delivery is not retried while the clipboard is unchanged.
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "todo: flaky"},
	}}
	del := &recordingDeliverer{outcome: domain.TransportFailure(errors.New("connection refused"))}

	runTicks(newTestWatcher(clip, del, nil), 4)

	if len(del.entries) != 1 {
		t.Fatalf("expected one attempt despite failure, got %d", len(del.entries))
	}
}

func TestWatcherChangedContentRetriggers(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "todo: first"},
		{content: "todo: first"},
		{content: "other stuff"},
		{content: "todo: first"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}

	runTicks(newTestWatcher(clip, del, nil), 4)

	// first, then first again after the clipboard changed in between
	if len(del.entries) != 2 {
		t.Fatalf("expected two deliveries, got %d", len(del.entries))
	}
}

func TestWatcherReadErrorDoesNotAdvance(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "todo: early"},
		{err: errors.New("clipboard unavailable")},
		{content: "todo: early"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}

	runTicks(newTestWatcher(clip, del, nil), 3)

	// The read error must not reset change detection: "todo: early" was
	// already processed and has not changed.
	if len(del.entries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(del.entries))
	}
}

func TestWatcherUnclassifiedContentStillMarksSeen(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "no tag here"},
		{content: "no tag here"},
		{content: "todo: now tagged"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}

	runTicks(newTestWatcher(clip, del, nil), 3)

	if len(del.entries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(del.entries))
	}
	if del.entries[0].Text != "now tagged" {
		t.Errorf("delivered %+v", del.entries[0])
	}
}

func TestWatcherEmptyClipboardIsARealValue(t *testing.T) {
	// Initial empty clipboard is distinct from "nothing observed yet":
	// it is observed once and then skipped as unchanged.
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: ""},
		{content: ""},
		{content: "todo: after empty"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}

	runTicks(newTestWatcher(clip, del, nil), 3)

	if len(del.entries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(del.entries))
	}
}

func TestWatcherJournalsOutcome(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "fu: ping Anna"},
	}}
	del := &recordingDeliverer{outcome: domain.Rejected(500, "boom")}
	journal := &recordingJournal{}

	runTicks(newTestWatcher(clip, del, journal), 2)

	if len(journal.records) != 1 {
		t.Fatalf("expected one journal record, got %d", len(journal.records))
	}
	rec := journal.records[0]
	if rec.Tag != "fu" || rec.Who != "LB" || rec.Status != domain.OutcomeRejected {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestWatcherJournalErrorIsAbsorbed(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{
		{content: "todo: resilient"},
	}}
	del := &recordingDeliverer{outcome: domain.Delivered()}
	journal := &recordingJournal{err: errors.New("disk full")}

	// Must not panic or stop; delivery still happens.
	runTicks(newTestWatcher(clip, del, journal), 2)

	if len(del.entries) != 1 {
		t.Fatalf("expected delivery despite journal failure, got %d", len(del.entries))
	}
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	clip := &scriptedClipboard{steps: []clipboardStep{{content: ""}}}
	del := &recordingDeliverer{outcome: domain.Delivered()}
	w := newTestWatcher(clip, del, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, expected context.Canceled", err)
	}
}
