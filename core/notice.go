package core

import "context"

// Notifier holds short-lived success messages ("notices") per session.
// A notice disappears on its own once its TTL elapses.
type Notifier interface {
	// Notify replaces the current notice of `key`.
	Notify(ctx context.Context, key, msg string) error
	// Current returns the notice of `key`, or "" if there is none.
	Current(ctx context.Context, key string) (string, error)
}
