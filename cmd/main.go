package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/adapter/postgres"
	"github.com/YelzhanWeb/restaurant/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/restaurant/internal/adapter/token"
	"github.com/YelzhanWeb/restaurant/internal/app/admin"
	"github.com/YelzhanWeb/restaurant/internal/app/auth"
	"github.com/YelzhanWeb/restaurant/internal/app/menu"
	"github.com/YelzhanWeb/restaurant/internal/app/order"
	"github.com/YelzhanWeb/restaurant/internal/app/payment"
	"github.com/YelzhanWeb/restaurant/internal/app/tracking"
	"github.com/YelzhanWeb/restaurant/internal/config"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/restaurant/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/restaurant/internal/adapter/http"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "api-server", "Service mode: api-server, notification-subscriber, migrate")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lgr := logger.NewWithWriter(*mode, cfg.Log.Level, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Route to appropriate service
	switch *mode {
	case "api-server":
		err = runAPIServer(ctx, cfg, lgr)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, lgr)
	case "migrate":
		err = runMigrations(ctx, cfg, lgr)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}

	if err != nil {
		lgr.Error("service_failed", "Service stopped with error", "runtime", nil, err)
		os.Exit(1)
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	db, err := postgres.Connect(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer db.Close()

	return postgres.Migrate(ctx, db, lgr)
}

func runAPIServer(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	if err := postgres.Migrate(ctx, db, lgr); err != nil {
		return err
	}

	// Connect to RabbitMQ
	var publisher interfaces.MessagePublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL())
		if err != nil {
			return err
		}
		defer mqConn.Close()

		publisher = rabbitmq.NewPublisher(mqConn, cfg.RabbitMQ.Exchange)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host":     cfg.RabbitMQ.Host,
			"exchange": cfg.RabbitMQ.Exchange,
		})
	} else {
		lgr.Info("rabbitmq_disabled", "RabbitMQ disabled, events are not published", "startup", nil)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Initialize repositories
	menuRepo := postgres.NewMenuRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	userRepo := postgres.NewUserRepository(db)

	issuer := token.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	// Initialize services
	handler := httpAdapter.NewRouter(httpAdapter.Services{
		Menu:     menu.NewService(menuRepo, lgr),
		Orders:   order.NewService(orderRepo, menuRepo, publisher, lgr),
		Tracking: tracking.NewService(orderRepo, publisher, lgr),
		Payments: payment.NewService(paymentRepo, publisher, lgr),
		Admin:    admin.NewService(reportRepo, orderRepo, loc, lgr),
		Auth:     auth.NewService(userRepo, issuer, cfg.Auth.BcryptCost, lgr),
		Health:   db,
	}, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	lgr.Info("service_started", fmt.Sprintf("API server started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port":     cfg.Server.Port,
		"timezone": loc.String(),
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down API server", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	if !cfg.RabbitMQ.Enabled {
		return fmt.Errorf("notification-subscriber requires rabbitmq.enabled")
	}

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQURL())
	if err != nil {
		return err
	}
	defer mqConn.Close()

	// Initialize consumer
	consumer := rabbitmq.NewConsumer(mqConn, cfg.RabbitMQ.Exchange, lgr)

	// Initialize handler
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr, os.Stdout)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"exchange": cfg.RabbitMQ.Exchange,
	})

	err = consumer.ConsumeNotifications(ctx, notificationHandler.HandleNotification)

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
