// Package notify formats and sends order confirmation messages. Dispatch is
// fire-and-forget from the checkout's point of view: a failed notification is
// logged, never rolled back into the order.
package notify

import "context"

// Message is one outbound notification.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Channel delivers a message to a destination address.
type Channel interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher emits order confirmation notifications.
type Dispatcher interface {
	// OrderPlaced sends the operational summary and the customer
	// confirmation for a placed order. It returns the first delivery error;
	// the caller logs it and moves on.
	OrderPlaced(ctx context.Context, n OrderNotification) error
}
