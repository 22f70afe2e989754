package ports

// Clipboard exposes read access to the system clipboard.
// It is polled, never pushed to; a read error is recoverable and means
// "unavailable this tick", not "stop watching".
type Clipboard interface {
	Read() (string, error)
}
