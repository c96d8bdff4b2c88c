package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/northlight-prints/storefront-backend/api/controllers"
	webhookcontrollers "github.com/northlight-prints/storefront-backend/api/controllers/webhooks"
	"github.com/northlight-prints/storefront-backend/api/middleware"
	cartsvc "github.com/northlight-prints/storefront-backend/internal/cart"
	checkoutsvc "github.com/northlight-prints/storefront-backend/internal/checkout"
	ordersvc "github.com/northlight-prints/storefront-backend/internal/orders"
	prefsvc "github.com/northlight-prints/storefront-backend/internal/prefs"
	"github.com/northlight-prints/storefront-backend/internal/pricing"
	stripewebhook "github.com/northlight-prints/storefront-backend/internal/webhooks/stripe"
	"github.com/northlight-prints/storefront-backend/pkg/config"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	pkgstripe "github.com/northlight-prints/storefront-backend/pkg/stripe"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers. Exactly one of
// the checkout variants is non-nil per process.
type Deps struct {
	Cfg     *config.Config
	Logg    *logger.Logger
	DB      pinger
	Redis   pinger
	Pricing *pricing.Engine
	Cart    *cartsvc.Manager
	Prefs   *prefsvc.Service

	Checkout  *checkoutsvc.Service
	Submitter controllers.CheckoutSubmitter

	Orders  *ordersvc.Service
	History *ordersvc.History

	StripeClient *pkgstripe.Client
	WebhookSvc   *stripewebhook.Service
	WebhookGuard *stripewebhook.IdempotencyGuard
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logg),
		middleware.RequestID(deps.Logg),
		middleware.Logging(deps.Logg),
	)
	if deps.Cfg != nil {
		r.Use(middleware.CORS(deps.Cfg.App.Origins()))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, deps.Redis, deps.Logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Webhooks authenticate by signature, not client token. Simulated
	// checkout captures synchronously, so the route only exists when the
	// hosted stack is wired.
	if deps.WebhookSvc != nil && deps.StripeClient != nil && deps.WebhookGuard != nil {
		r.Route("/api/v1/webhooks", func(r chi.Router) {
			r.Post("/stripe", webhookcontrollers.StripeWebhook(deps.WebhookSvc, deps.StripeClient, deps.WebhookGuard, deps.Logg))
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ClientToken(deps.Logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Pricing, deps.Logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Pricing, deps.Logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, deps.Logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, deps.Logg))
			r.Patch("/items/{lineID}", controllers.CartUpdateLine(deps.Cart, deps.Logg))
			r.Delete("/items/{lineID}", controllers.CartRemoveLine(deps.Cart, deps.Logg))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/estimate", controllers.CheckoutEstimate(deps.Checkout, deps.Cart, deps.Logg))
			r.Post("/", controllers.CheckoutSubmit(deps.Submitter, deps.Cart, deps.Logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/history", controllers.OrderHistory(deps.History, deps.Logg))
			r.Get("/", controllers.OrderList(deps.Orders, deps.Logg))
			r.Get("/{orderID}", controllers.OrderFetch(deps.Orders, deps.Logg))
		})

		r.Route("/prefs", func(r chi.Router) {
			r.Get("/consent", controllers.ConsentFetch(deps.Prefs, deps.Logg))
			r.Put("/consent", controllers.ConsentSave(deps.Prefs, deps.Logg))
			r.Get("/theme", controllers.ThemeFetch(deps.Prefs, deps.Logg))
			r.Put("/theme", controllers.ThemeSave(deps.Prefs, deps.Logg))
		})
	})

	return r
}
