package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/northlight-prints/storefront-backend/api/controllers"
	"github.com/northlight-prints/storefront-backend/api/routes"
	cartsvc "github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/internal/catalog"
	checkoutsvc "github.com/northlight-prints/storefront-backend/internal/checkout"
	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/internal/media"
	"github.com/northlight-prints/storefront-backend/internal/notifications"
	ordersvc "github.com/northlight-prints/storefront-backend/internal/orders"
	prefsvc "github.com/northlight-prints/storefront-backend/internal/prefs"
	"github.com/northlight-prints/storefront-backend/internal/pricing"
	stripewebhook "github.com/northlight-prints/storefront-backend/internal/webhooks/stripe"
	"github.com/northlight-prints/storefront-backend/pkg/config"
	"github.com/northlight-prints/storefront-backend/pkg/db"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/metrics"
	"github.com/northlight-prints/storefront-backend/pkg/migrate"
	"github.com/northlight-prints/storefront-backend/pkg/redis"
	pkgstripe "github.com/northlight-prints/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.Flags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storefrontMetrics := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	local, err := localstore.New(cfg.LocalStore.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to open local document store", err)
		os.Exit(1)
	}

	cat := catalog.Default()
	measurer := media.NewMeasurer(cfg.Catalog.ImageBaseURL, cfg.Catalog.FetchTimeout)
	pricingEngine := pricing.NewEngine(cat, measurer, logg)

	cartManager := cartsvc.NewManager(local, pricingEngine)
	prefsService := prefsvc.NewService(local)

	orderService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Repo: ordersvc.NewRepository(dbClient.DB()),
		Tx:   dbClient,
		Logg: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	orderHistory := ordersvc.NewHistory(local)

	emailer := notifications.NewEmailer(cfg.Email, logg)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Catalog: cat,
		Orders:  orderService,
		History: orderHistory,
		Mailer:  emailer,
		Logg:    logg,
		Metrics: storefrontMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	// The payment variant is fixed per deployment. Hosted checkout needs the
	// full Stripe stack; simulated runs without any of it.
	var (
		submitter    controllers.CheckoutSubmitter
		stripeClient *pkgstripe.Client
		webhookSvc   *stripewebhook.Service
		webhookGuard *stripewebhook.IdempotencyGuard
	)
	if cfg.Checkout.IsHosted() {
		stripeClient, err = pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to init stripe", err)
			os.Exit(1)
		}

		hosted, err := checkoutsvc.NewHostedCheckout(
			checkoutService,
			checkoutsvc.NewSessionClient(stripeClient),
			cfg.Checkout.SuccessURL,
			cfg.Checkout.CancelURL,
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create hosted checkout", err)
			os.Exit(1)
		}
		submitter = hosted

		webhookSvc, err = stripewebhook.NewService(stripewebhook.ServiceParams{
			Orders:  orderService,
			Logg:    logg,
			Metrics: storefrontMetrics,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create webhook service", err)
			os.Exit(1)
		}

		webhookGuard, err = stripewebhook.NewIdempotencyGuard(redisClient, cfg.Checkout.WebhookIdempotencyTTL, "stripe")
		if err != nil {
			logg.Error(context.Background(), "failed to create webhook guard", err)
			os.Exit(1)
		}
	} else {
		simulated, err := checkoutsvc.NewSimulatedCheckout(checkoutService)
		if err != nil {
			logg.Error(context.Background(), "failed to create simulated checkout", err)
			os.Exit(1)
		}
		submitter = simulated
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"checkout_mode": cfg.Checkout.Mode,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:          cfg,
			Logg:         logg,
			DB:           dbClient,
			Redis:        redisClient,
			Pricing:      pricingEngine,
			Cart:         cartManager,
			Prefs:        prefsService,
			Checkout:     checkoutService,
			Submitter:    submitter,
			Orders:       orderService,
			History:      orderHistory,
			StripeClient: stripeClient,
			WebhookSvc:   webhookSvc,
			WebhookGuard: webhookGuard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
