package catalog

import "context"

// Notification is a title/body pair delivered by a Notifier.
type Notification struct {
	Title string
	Body  string
}

// MaxReachedNotification is sent once, when the store first reaches Capacity.
var MaxReachedNotification = Notification{
	Title: "Maximum Products Reached",
	Body:  "You have added 5 products, which is the maximum limit.",
}

// Notifier delivers a notification immediately. Errors are reported to the
// caller but the store never surfaces them to its own callers.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }
