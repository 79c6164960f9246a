package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderNotification carries everything needed to format the confirmation
// messages for one placed order.
type OrderNotification struct {
	OrderID  uuid.UUID
	Items    []model.CartLineItem
	Quote    pricing.Quote
	Promo    *string
	UserInfo model.UserInfo
}

// dispatcher implements Dispatcher over a delivery channel.
type dispatcher struct {
	channel Channel
	calc    *pricing.Calculator
	from    string
	ops     string
	logger  zerolog.Logger
}

// NewDispatcher creates an order notification dispatcher. The ops address
// receives a summary of every order; the customer address comes from the
// order's contact snapshot.
func NewDispatcher(channel Channel, calc *pricing.Calculator, from, ops string, logger zerolog.Logger) Dispatcher {
	return &dispatcher{
		channel: channel,
		calc:    calc,
		from:    from,
		ops:     ops,
		logger:  logger.With().Str("component", "notify-dispatcher").Logger(),
	}
}

// OrderPlaced sends the ops summary and the customer confirmation.
func (d *dispatcher) OrderPlaced(ctx context.Context, n OrderNotification) error {
	itemLines := d.formatItems(n.Items)

	opsMsg := Message{
		To:      d.ops,
		Subject: fmt.Sprintf("Order from %s", displayName(n.UserInfo)),
		HTML:    d.opsBody(n, itemLines),
	}

	var firstErr error
	if err := d.channel.Send(ctx, opsMsg); err != nil {
		d.logger.Error().
			Err(err).
			Str("order_id", n.OrderID.String()).
			Msg("failed to send ops notification")
		firstErr = err
	}

	if n.UserInfo.Email != "" {
		customerMsg := Message{
			To:      n.UserInfo.Email,
			Subject: "Order Confirmation",
			HTML:    d.customerBody(n, itemLines),
		}
		if err := d.channel.Send(ctx, customerMsg); err != nil {
			d.logger.Error().
				Err(err).
				Str("order_id", n.OrderID.String()).
				Msg("failed to send customer notification")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr == nil {
		d.logger.Info().
			Str("order_id", n.OrderID.String()).
			Msg("order notifications sent")
	}

	return firstErr
}

// formatItems renders each line item as "Name (Size: X) xQ - EGP amount".
func (d *dispatcher) formatItems(items []model.CartLineItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		size := ""
		if it.Size != "" {
			size = fmt.Sprintf(" (Size: %s)", it.Size)
		}
		lines = append(lines, fmt.Sprintf("%s%s x%d - %s", it.Name, size, it.Quantity, d.calc.FormatAmount(it.LineTotal())))
	}
	return strings.Join(lines, "<br>")
}

func (d *dispatcher) opsBody(n OrderNotification, itemLines string) string {
	var b strings.Builder
	b.WriteString("<h2>New Order</h2>")
	fmt.Fprintf(&b, "<p><strong>Customer:</strong> %s</p>", n.UserInfo.FullName)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", n.UserInfo.Email)
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", n.UserInfo.Phone)
	fmt.Fprintf(&b, "<p><strong>Address:</strong> %s</p>", n.UserInfo.Address)
	fmt.Fprintf(&b, "<p><strong>Subtotal:</strong> %s</p>", d.calc.FormatAmount(n.Quote.Subtotal))
	if n.Quote.Discount > 0 {
		code := ""
		if n.Promo != nil {
			code = fmt.Sprintf(" (%s)", *n.Promo)
		}
		fmt.Fprintf(&b, "<p><strong>Discount%s:</strong> -%s</p>", code, d.calc.FormatAmount(n.Quote.Discount))
	}
	fmt.Fprintf(&b, "<p><strong>Shipping:</strong> %s</p>", d.calc.FormatAmount(n.Quote.Shipping))
	fmt.Fprintf(&b, "<p><strong>Total:</strong> %s</p>", d.calc.FormatAmount(n.Quote.Total))
	fmt.Fprintf(&b, "<h3>Items</h3><div>%s</div>", itemLines)
	fmt.Fprintf(&b, "<p>Order ID: %s</p>", n.OrderID)
	return b.String()
}

func (d *dispatcher) customerBody(n OrderNotification, itemLines string) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your order</h2>")
	fmt.Fprintf(&b, "<p>Hello %s,</p><p>Your order has been received.</p>", n.UserInfo.FullName)
	fmt.Fprintf(&b, "<p><strong>Total:</strong> %s</p>", d.calc.FormatAmount(n.Quote.Total))
	fmt.Fprintf(&b, "<h3>Items</h3><div>%s</div>", itemLines)
	fmt.Fprintf(&b, "<p>Order ID: %s</p>", n.OrderID)
	return b.String()
}

func displayName(info model.UserInfo) string {
	if info.FullName != "" {
		return info.FullName
	}
	if info.Email != "" {
		return info.Email
	}
	return "Customer"
}
