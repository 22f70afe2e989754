package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cliprelay/internal/domain"
)

type memJournal struct {
	records []domain.Record
}

func (j *memJournal) Record(domain.ClassifiedEntry, string, domain.Outcome) error { return nil }
func (j *memJournal) Recent(limit int) ([]domain.Record, error) {
	if limit < len(j.records) {
		return j.records[:limit], nil
	}
	return j.records, nil
}
func (j *memJournal) Close() error { return nil }

type memClipboard struct {
	written string
}

func (c *memClipboard) Write(text string) error {
	c.written = text
	return nil
}

func testRecords() []domain.Record {
	return []domain.Record{
		{Tag: "todo", Section: "TODO", Text: "newest", Status: domain.OutcomeDelivered, CreatedAt: time.Now()},
		{Tag: "fu", Section: "Follow Up", Text: "older", Status: domain.OutcomeRejected, Detail: "boom", CreatedAt: time.Now().Add(-time.Hour)},
	}
}

func loadedModel(t *testing.T, clip *memClipboard) *HistoryModel {
	t.Helper()
	journal := &memJournal{records: testRecords()}
	m := NewHistoryModel(journal, clip)
	m.SetSize(100, 30)

	msg := m.Reload()()
	loaded, ok := msg.(RecordsLoadedMsg)
	if !ok {
		t.Fatalf("Reload produced %T", msg)
	}
	m.Update(loaded)
	return m
}

func TestHistoryViewRendersRecords(t *testing.T) {
	m := loadedModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "newest") || !strings.Contains(view, "older") {
		t.Errorf("view missing records:\n%s", view)
	}
	if !strings.Contains(view, "delivered") || !strings.Contains(view, "rejected") {
		t.Errorf("view missing outcome labels:\n%s", view)
	}
}

func TestHistoryCursorMovement(t *testing.T) {
	m := loadedModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("cursor must stop at the last record, got %d", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up", m.cursor)
	}
}

func TestHistoryCopySelected(t *testing.T) {
	clip := &memClipboard{}
	m := loadedModel(t, clip)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	if clip.written != "older" {
		t.Errorf("clipboard = %q, expected the selected record's text", clip.written)
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	m := NewHistoryModel(&memJournal{}, nil)
	m.SetSize(100, 30)

	msg := m.Reload()()
	m.Update(msg)

	if view := m.View(); !strings.Contains(view, "No deliveries") {
		t.Errorf("empty view should say so:\n%s", view)
	}
}
