package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/nyc-burger-co/kiosk-api/internal/catalog"
	"github.com/nyc-burger-co/kiosk-api/internal/checkout"
	"github.com/nyc-burger-co/kiosk-api/internal/common"
	"github.com/nyc-burger-co/kiosk-api/internal/config"
	"github.com/nyc-burger-co/kiosk-api/internal/events"
	"github.com/nyc-burger-co/kiosk-api/internal/health"
	"github.com/nyc-burger-co/kiosk-api/internal/obs"
	"github.com/nyc-burger-co/kiosk-api/internal/payment"
	"github.com/nyc-burger-co/kiosk-api/internal/ratelimit"
	"github.com/nyc-burger-co/kiosk-api/internal/resilience"
	"github.com/nyc-burger-co/kiosk-api/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	if cfg.TracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "kiosk-api",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, idempotency and rate limiting degrade to pass-through")
		}
		cancel()
	}

	bus := &events.Bus{
		Notifiers: []events.Notifier{
			events.LogNotifier{Logger: logger},
			events.CounterNotifier{Inc: countTopic},
		},
	}

	menu := catalog.Default()
	catalogHandler := &catalog.Handler{Provider: menu}

	gateway := payment.Resilient{
		Provider: payment.NewSimulator(cfg.PaymentLatency),
		Breaker: resilience.NewBreaker(5, 0.5, 30*time.Second).
			WithTarget("payment_gateway").
			WithLogger(logger),
	}

	store := checkout.NewStore(cfg.SessionTTL)
	obs.RegisterActiveSessions(cfg.MetricsNamespace, nil, store.Len)

	checkoutSvc := &checkout.Service{
		Store:          store,
		Prices:         cfg.Prices,
		Catalog:        menu,
		TaxBps:         cfg.TaxRateBps,
		BurgerName:     cfg.BurgerName,
		PickupEstimate: cfg.PickupEstimate,
		Gateway:        gateway,
		Events:         bus,
		Log:            logger,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	paymentLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "kiosk:payments:"},
		Config: ratelimit.Config{
			Key:    func(r *http.Request) string { return chi.URLParam(r, "id") },
			Window: cfg.PaymentWindow,
			Max:    cfg.PaymentMaxAttempts,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("payment rate limiter unavailable")
		},
	}

	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if cfg.TracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: true}.Middleware)
	r.Use(security.BodyLimit{Max: 1 << 16}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	healthHandler := health.Handler{RedisTimeout: 300 * time.Millisecond}
	if redisClient != nil {
		healthHandler.Checker = readinessChecker{redis: redisClient}
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/catalog/menu-duo", catalogHandler.MenuDuo)

		v.Route("/sessions", func(s chi.Router) {
			s.With(idem.Middleware).Post("/", checkoutHandler.Create)
			s.Route("/{id}", func(sess chi.Router) {
				sess.Get("/", checkoutHandler.Get)
				sess.Post("/burgers", checkoutHandler.AddBurger)
				sess.Patch("/burgers/{burgerId}", checkoutHandler.UpdateBurger)
				sess.Delete("/burgers/{burgerId}", checkoutHandler.RemoveBurger)
				sess.Post("/reset", checkoutHandler.ResetBurgers)
				sess.Put("/menu-duo", checkoutHandler.SetMenuDuo)
				sess.Post("/menu-duo/sides/{itemId}", checkoutHandler.ToggleSide)
				sess.Post("/menu-duo/drinks/{itemId}", checkoutHandler.ToggleDrink)
				sess.Get("/quote", checkoutHandler.Quote)
				sess.Post("/checkout", checkoutHandler.BeginCheckout)
				sess.Post("/checkout/continue", checkoutHandler.ContinueToPayment)
				sess.Post("/checkout/back", checkoutHandler.BackToReview)
				sess.Post("/checkout/edit", checkoutHandler.EditOrder)
				sess.With(idem.Middleware, paymentLimiter.Middleware).Post("/payment", checkoutHandler.SubmitPayment)
				sess.Post("/new-order", checkoutHandler.StartNewOrder)
				sess.Post("/home", checkoutHandler.GoHome)
			})
		})
	})

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go store.Janitor(janitorCtx, cfg.SessionSweepInterval)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	health.SetReady(false)
	logger.Info().Msg("draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	stopJanitor()
	logger.Info().Msg("server stopped")
}

func countTopic(topic string) {
	if obs.DomainEventsTotal != nil {
		obs.DomainEventsTotal.WithLabelValues(topic).Inc()
	}
	switch topic {
	case events.TopicSessionCreated:
		if obs.SessionsCreatedTotal != nil {
			obs.SessionsCreatedTotal.Inc()
		}
	case events.TopicOrderConfirmed:
		if obs.OrdersConfirmedTotal != nil {
			obs.OrdersConfirmedTotal.Inc()
		}
	case events.TopicPaymentSucceeded:
		if obs.PaymentSubmissionsTotal != nil {
			obs.PaymentSubmissionsTotal.WithLabelValues("succeeded").Inc()
		}
	case events.TopicPaymentFailed:
		if obs.PaymentSubmissionsTotal != nil {
			obs.PaymentSubmissionsTotal.WithLabelValues("failed").Inc()
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	redis *redis.Client
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}
