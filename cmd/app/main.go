package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SareeStoreAPI/external/abstractapi"
	"SareeStoreAPI/external/storage"

	"SareeStoreAPI/internal/cache"
	"SareeStoreAPI/internal/cart"
	"SareeStoreAPI/internal/config"
	"SareeStoreAPI/internal/db"
	"SareeStoreAPI/internal/events"
	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/repository"
	"SareeStoreAPI/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	cliApp := &cli.App{
		Name:   "saree-store-api",
		Usage:  "storefront backend for the silk saree shop",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "roll back the last migration", Action: migrateDown},
				},
			},
			{
				Name:  "create-admin",
				Usage: "create a back-office account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
					&cli.StringFlag{Name: "name"},
				},
				Action: createAdmin,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("exiting")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

func migrateUp(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return db.MigrateUp(cfg.DatabaseURL)
}

func migrateDown(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return db.MigrateDown(cfg.DatabaseURL)
}

func createAdmin(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := db.Connect(c.Context, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc := services.NewAuthService(repository.NewUserRepository(pool))
	u, err := authSvc.RegisterAdmin(c.Context, c.String("email"), c.String("password"), c.String("name"))
	if err != nil {
		return err
	}
	logger.Info().Str("user_id", u.UserID.String()).Str("email", u.Email).Msg("admin created")
	return nil
}

// buildApp wires repositories, optional infrastructure and services. The
// returned func releases whatever was opened.
func buildApp(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*app, func(), error) {
	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	checkoutRepo := repository.NewCheckoutRepository(pool)
	shippingRepo := repository.NewShippingRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// ======================
	// SERVICES
	// ======================
	catalogSvc := services.NewCatalogService(productRepo)
	shippingSvc := services.NewShippingService(shippingRepo, cfg.InternationalShippingRate)
	checkoutSvc := services.NewCheckoutService(checkoutRepo, productRepo, shippingSvc)
	orderSvc := services.NewOrderService(orderRepo, customerRepo)

	a := &app{
		Catalog:  catalogSvc,
		Shipping: shippingSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Wishlist: services.NewWishlistService(wishlistRepo, customerRepo, productRepo),
		Contact:  services.NewContactService(contactRepo),
		Auth:     services.NewAuthService(userRepo),
		JWT:      middleware.NewJWTManager(cfg.JWTSecret, 24*time.Hour),
		Limiter:  newRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}

	// ======================
	// EXTERNALS
	// ======================
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { rdb.Close() })
		checkoutSvc.Guard = cache.NewIdempotencyGuard(rdb, 24*time.Hour)
		a.Carts = cart.NewRedisStore(rdb, 30*24*time.Hour)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set: cart sessions and idempotency keys disabled")
	}

	var publisher events.Publisher = events.Noop{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(brokers, cfg.KafkaTopic))
	}
	closers = append(closers, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn().Err(err).Msg("close event publisher")
		}
	})
	checkoutSvc.Events = publisher
	orderSvc.Events = publisher

	if cfg.UseEmailReputation {
		v, err := abstractapi.NewAbstractReputationValidator(cfg.AbstractAPIKey)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		checkoutSvc.Validator = v
	}

	var images services.ImageStore
	if cfg.StorageURL != "" {
		bucket, err := storage.NewBucketClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		images = bucket
	}
	a.Admin = services.NewAdminService(productRepo, orderRepo, customerRepo, contactRepo, images)

	return a, cleanup, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	a, cleanup, err := buildApp(ctx, cfg, pool)
	if err != nil {
		return err
	}
	defer cleanup()

	e := newServer(a)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return e.Shutdown(shutdownCtx)
}
