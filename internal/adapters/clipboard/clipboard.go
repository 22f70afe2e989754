// Package clipboard adapts the system clipboard to the ports.Clipboard
// interface.
package clipboard

import (
	atotto "github.com/atotto/clipboard"

	"cliprelay/internal/ports"
)

// Reader polls the system clipboard.
type Reader struct{}

var _ ports.Clipboard = (*Reader)(nil)

// NewReader creates a clipboard reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the current clipboard content.
func (r *Reader) Read() (string, error) {
	return atotto.ReadAll()
}

// Write replaces the clipboard content. Used by the TUI to copy an
// entry's text back out of the journal.
func (r *Reader) Write(text string) error {
	return atotto.WriteAll(text)
}
