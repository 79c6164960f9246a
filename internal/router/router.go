package router

import (
	"net/http"
	"strings"

	"github.com/Ziad-Belal/strike-api/internal/auth"
	"github.com/Ziad-Belal/strike-api/internal/handler"
	"github.com/Ziad-Belal/strike-api/internal/middleware"
	"github.com/Ziad-Belal/strike-api/internal/repository"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers the router wires up.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Promo    *handler.PromoHandler
	Profile  *handler.ProfileHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	verifier *auth.TokenVerifier,
	broadcaster *auth.Broadcaster,
	profiles repository.ProfileRepository,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(logger)
	requireAdmin := middleware.RequireAdmin(profiles, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes: public reads, admin writes.
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			requireAdmin(http.HandlerFunc(h.Product.Create)).ServeHTTP(w, r)
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/stock"):
			requireAdmin(http.HandlerFunc(h.Product.SetStock)).ServeHTTP(w, r)
		case r.URL.Path != "/api/products" && r.URL.Path != "/api/products/":
			h.Product.GetByID(w, r)
		default:
			h.Product.GetAll(w, r)
		}
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart routes, keyed by the device header.
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.Cart.Get(w, r)
	})
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Cart.AddItem(w, r)
		case http.MethodDelete:
			h.Cart.RemoveItem(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Promo routes: preview is public, creation is admin.
	mux.HandleFunc("/api/promos/apply", h.Promo.Apply)
	mux.HandleFunc("/api/promos", func(w http.ResponseWriter, r *http.Request) {
		requireAdmin(http.HandlerFunc(h.Promo.Create)).ServeHTTP(w, r)
	})

	// Profile routes for the authenticated user.
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			requireAuth(http.HandlerFunc(h.Profile.Get)).ServeHTTP(w, r)
		case http.MethodPut:
			requireAuth(http.HandlerFunc(h.Profile.Save)).ServeHTTP(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Checkout for the authenticated user.
	mux.HandleFunc("/api/checkout", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(h.Checkout.Checkout)).ServeHTTP(w, r)
	})

	// Order lookup.
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(h.Order.GetByID)).ServeHTTP(w, r)
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> Identity
	var root http.Handler = mux
	root = middleware.Identity(verifier, broadcaster, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
