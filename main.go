// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/admin"
	"go-storefront/adminguard"
	"go-storefront/apiclient"
	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/checkout"
	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/events"
	"go-storefront/identity"
	"go-storefront/logger"
	"go-storefront/metrics"
	"go-storefront/middleware"
	"go-storefront/routes"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)
	if !dotenv {
		log.Info().Msg("no .env file found, proceeding with environment variables")
	}

	api := apiclient.New(cfg.API.URL, cfg.API.Timeout, log)

	// Session store: Redis when configured, otherwise in process
	var store session.Store
	if cfg.Session.RedisAddr != "" {
		rs := session.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.TTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Str("addr", cfg.Session.RedisAddr).Msg("redis connect failed")
		}
		cancel()
		defer func() { _ = rs.Close() }()
		store = rs
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions are kept in memory")
		ms := session.NewMemoryStore(cfg.Session.TTL)
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		defer stopSweep()
		ms.StartSweeper(sweepCtx, cfg.Session.SweepInterval, log)
		store = ms
	}

	// Order notifiers
	var notifiers []checkout.Notifier
	if cfg.Rabbit.URL != "" {
		rc, err := events.Connect(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbit connect failed")
		}
		defer func() { _ = rc.Close() }()
		notifiers = append(notifiers, events.NewOrderPublisher(rc.Ch, cfg.Rabbit.Exchange, log))
	}
	if cfg.Email.Token != "" {
		notifiers = append(notifiers, utils.NewEmailService(cfg.Email.Token, cfg.Email.Sender))
	}

	var provider identity.ProviderVerifier
	if cfg.Google.ClientID != "" {
		provider = identity.NewGoogleVerifier(context.Background(), cfg.Google.ClientID)
	} else {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set, Google sign-in is disabled")
	}

	bus := events.NewBus()
	resolver := identity.NewResolver()
	accessor := cart.NewAccessor(api, bus, log)
	aggregator := checkout.NewAggregator(accessor, accessor.Mirror(), api, log, notifiers...)

	// Initialize controllers
	userController := controllers.NewUserController(identity.NewService(api, provider, log), resolver, accessor.Mirror(), log)
	productController := controllers.NewProductController(catalog.New(api, log), log)
	cartController := controllers.NewCartController(accessor, bus, log)
	orderController := controllers.NewOrderController(aggregator, api, log)
	adminController := controllers.NewAdminController(admin.NewService(api, log), log)

	// Set up the router
	router := mux.NewRouter()
	router.Use(metrics.Middleware(cfg.Common.ServiceName))
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Session(store, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	}, log))
	routes.RegisterRoutes(router, routes.Guards{
		Shopper: middleware.RequireShopper(resolver),
		Admin:   middleware.AdminGuard(adminguard.New(log)),
	}, userController, productController, cartController, orderController, adminController)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", cfg.API.URL).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutdown...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
