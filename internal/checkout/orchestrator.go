// Package checkout sequences the conversion of a cart, profile and promo into
// a placed order. One placement call persists the order atomically; promo
// usage and notifications afterwards are best effort and never rolled back.
package checkout

import (
	"context"
	"sync"

	"github.com/Ziad-Belal/strike-api/internal/auth"
	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/model"
	"github.com/Ziad-Belal/strike-api/internal/notify"
	"github.com/Ziad-Belal/strike-api/internal/pricing"
	"github.com/Ziad-Belal/strike-api/internal/profile"
	"github.com/Ziad-Belal/strike-api/internal/promo"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderPlacer is the order-placement endpoint: it durably records the order
// header, its line items and the stock decrements as one operation.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.PlacedOrder, error)
}

// PromoCounter increments promo usage after successful placement.
type PromoCounter interface {
	IncrementUsage(ctx context.Context, code string) error
}

// Result is the outcome of a successful checkout.
type Result struct {
	OrderID uuid.UUID    `json:"orderId"`
	Quote   pricing.Quote `json:"quote"`
}

// Orchestrator drives a checkout attempt through the state machine
// Idle -> Validating -> Placing -> Notifying -> Done.
type Orchestrator struct {
	profiles repository.ProfileRepository
	gate     *profile.Gate
	promos   promo.Evaluator
	calc     *pricing.Calculator
	placer   OrderPlacer
	usage    PromoCounter
	notifier notify.Dispatcher
	inFlight sync.Map // device ID -> struct{} while an attempt is running
	logger   zerolog.Logger
}

// NewOrchestrator wires a checkout orchestrator from its collaborators.
func NewOrchestrator(
	profiles repository.ProfileRepository,
	gate *profile.Gate,
	promos promo.Evaluator,
	calc *pricing.Calculator,
	placer OrderPlacer,
	usage PromoCounter,
	notifier notify.Dispatcher,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		profiles: profiles,
		gate:     gate,
		promos:   promos,
		calc:     calc,
		placer:   placer,
		usage:    usage,
		notifier: notifier,
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// Checkout runs one attempt for the identity on the context and the given
// cart store. Every failure before placement leaves the cart intact and
// nothing persisted. No step is retried automatically.
func (o *Orchestrator) Checkout(ctx context.Context, store *cart.Store, promoCode string) (*Result, error) {
	// Only one attempt in flight per session; re-submission while placing is
	// rejected rather than queued. Other sessions are unaffected.
	if _, busy := o.inFlight.LoadOrStore(store.DeviceID(), struct{}{}); busy {
		return nil, model.ErrCheckoutInProgress
	}
	defer o.inFlight.Delete(store.DeviceID())

	identity := auth.FromContext(ctx)
	if identity == nil {
		o.logger.Debug().Msg("checkout without identity")
		return nil, model.ErrNotAuthenticated
	}

	if store.IsEmpty() {
		o.logger.Debug().Str("user_id", identity.UserID).Msg("checkout with empty cart")
		return nil, model.ErrEmptyCart
	}

	log := o.logger.With().Str("user_id", identity.UserID).Logger()
	log.Info().Str("state", StateValidating.String()).Msg("checkout started")

	req, promoApplied, err := o.validate(ctx, identity, store, promoCode)
	if err != nil {
		log.Warn().Err(err).Str("state", StateErrored.String()).Msg("checkout validation failed")
		return nil, err
	}

	log.Info().
		Str("state", StatePlacing.String()).
		Int("items", len(req.Items)).
		Float64("total", req.Total).
		Msg("placing order")

	placed, err := o.placer.PlaceOrder(ctx, req)
	if err != nil {
		// Cart untouched, promo usage untouched. The endpoint's message is
		// surfaced as-is when it is a domain error.
		log.Error().Err(err).Str("state", StateErrored.String()).Msg("order placement failed")
		return nil, err
	}

	log.Info().
		Str("state", StateNotifying.String()).
		Str("order_id", placed.OrderID.String()).
		Msg("order placed")

	o.finalize(ctx, store, req, placed, promoApplied, log)

	log.Info().Str("state", StateDone.String()).Str("order_id", placed.OrderID.String()).Msg("checkout completed")

	return &Result{
		OrderID: placed.OrderID,
		Quote: pricing.Quote{
			Subtotal: req.Subtotal,
			Discount: req.Discount,
			Shipping: req.Shipping,
			Total:    req.Total,
		},
	}, nil
}

// validate runs the profile gate, the promo evaluation and per-item checks,
// and builds the immutable order request. Nothing is persisted here.
func (o *Orchestrator) validate(ctx context.Context, identity *auth.Identity, store *cart.Store, promoCode string) (*model.OrderRequest, *model.PromoCode, error) {
	prof, err := o.profiles.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, nil, err
	}

	if err := o.gate.EnsureCheckoutEligible(prof); err != nil {
		return nil, nil, err
	}

	items := store.Items()
	for _, it := range items {
		if it.ProductID <= 0 || it.Name == "" || it.UnitPrice <= 0 || it.Quantity < 1 {
			// The offending item stays in the cart for user correction;
			// the whole attempt aborts, never a partial order.
			o.logger.Warn().
				Int64("product_id", it.ProductID).
				Str("name", it.Name).
				Msg("invalid cart item")
			return nil, nil, model.ErrInvalidCartItem
		}
	}

	subtotal := o.calc.Subtotal(items)

	var promoApplied *model.PromoCode
	var discount float64
	if promoCode != "" {
		promoApplied, discount, err = o.promos.Apply(ctx, promoCode, subtotal)
		if err != nil {
			return nil, nil, err
		}
	}

	quote := o.calc.Quote(items, discount)

	var code *string
	if promoApplied != nil {
		code = &promoApplied.Code
	}

	return &model.OrderRequest{
		UserID:    identity.UserID,
		Items:     items,
		Subtotal:  quote.Subtotal,
		Shipping:  quote.Shipping,
		Discount:  quote.Discount,
		PromoCode: code,
		Total:     quote.Total,
		UserInfo: model.UserInfo{
			Email:    identity.Email,
			FullName: prof.FullName,
			Phone:    prof.Phone,
			Address:  prof.Address,
		},
	}, promoApplied, nil
}

// finalize runs the post-placement steps. The order is already durable, so
// every failure here is logged and tolerated, never compensated.
func (o *Orchestrator) finalize(ctx context.Context, store *cart.Store, req *model.OrderRequest, placed *model.PlacedOrder, promoApplied *model.PromoCode, log zerolog.Logger) {
	if promoApplied != nil {
		if err := o.usage.IncrementUsage(ctx, promoApplied.Code); err != nil {
			log.Error().
				Err(err).
				Str("code", promoApplied.Code).
				Str("order_id", placed.OrderID.String()).
				Msg("failed to increment promo usage, order kept")
		}
	}

	notification := notify.OrderNotification{
		OrderID: placed.OrderID,
		Items:   req.Items,
		Quote: pricing.Quote{
			Subtotal: req.Subtotal,
			Discount: req.Discount,
			Shipping: req.Shipping,
			Total:    req.Total,
		},
		Promo:    req.PromoCode,
		UserInfo: req.UserInfo,
	}
	if err := o.notifier.OrderPlaced(ctx, notification); err != nil {
		log.Error().
			Err(err).
			Str("order_id", placed.OrderID.String()).
			Msg("order notification failed, order kept")
	}

	if err := store.Clear(ctx); err != nil {
		// The order exists either way; a stale snapshot is the lesser evil.
		log.Error().
			Err(err).
			Str("order_id", placed.OrderID.String()).
			Msg("failed to clear cart after checkout")
	}
}
