// Package milkdelivery собирает приложение доставки молока: хранилище,
// кеш, публикацию событий, бизнес-сервисы и HTTP-сервер.
package milkdelivery

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/milk-delivery/internal/cache"
	"github.com/magabrotheeeer/milk-delivery/internal/config"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/jwt"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/milk-delivery/internal/migrations"
	adminservice "github.com/magabrotheeeer/milk-delivery/internal/services/admin"
	authservice "github.com/magabrotheeeer/milk-delivery/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/milk-delivery/internal/services/catalog"
	deliveryservice "github.com/magabrotheeeer/milk-delivery/internal/services/delivery"
	paymentservice "github.com/magabrotheeeer/milk-delivery/internal/services/payment"
	userservice "github.com/magabrotheeeer/milk-delivery/internal/services/user"
	"github.com/magabrotheeeer/milk-delivery/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние подключения приложения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
}

// New инициализирует все зависимости приложения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// RabbitMQ опционален: без адреса заказы создаются, но события не публикуются.
	var rabbitConn *amqp.Connection
	var publisher deliveryservice.EventPublisher
	if cfg.RabbitConnection.AddressRabbit != "" {
		conn, ch, err := rabbitmq.Connect(cfg.RabbitConnection.AddressRabbit)
		if err != nil {
			return nil, err
		}
		if err := rabbitmq.SetupQueues(ch); err != nil {
			_ = conn.Close()
			return nil, err
		}
		rabbitConn = conn
		publisher = rabbitmq.NewOrderEventPublisher(ch)
	} else {
		logger.Warn("rabbitmq address is empty, order events disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	deliveryService := deliveryservice.NewDeliveryService(db, publisher, logger)
	paymentService := paymentservice.NewPaymentService(db, logger)
	adminService := adminservice.NewAdminService(db, logger)
	userService := userservice.NewUserService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, catalogService, deliveryService,
		paymentService, adminService, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbitConn != nil {
			_ = a.rabbitConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
