package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/catalog"
	"github.com/Aniket760/E-Coomarse/internal/checkout"
	h "github.com/Aniket760/E-Coomarse/internal/http"
	"github.com/Aniket760/E-Coomarse/internal/notify"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/publisher"
	"github.com/Aniket760/E-Coomarse/internal/repository"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string

	GatewayKeyID     string
	GatewayKeySecret string
	Currency         string

	OrderNotifyEmail string
	SMTPAddr         string
	SMTPFrom         string
	SMTPUser         string
	SMTPPassword     string

	AdminToken string
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid DB_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         dbPort,
		DBUser:         getEnv("DB_USER", "storefront"),
		DBPassword:     getEnv("DB_PASSWORD", "storefront"),
		DBName:         getEnv("DB_NAME", "storefront"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),

		GatewayKeyID:     getEnv("GATEWAY_KEY_ID", ""),
		GatewayKeySecret: getEnv("GATEWAY_KEY_SECRET", ""),
		Currency:         getEnv("CURRENCY", "INR"),

		OrderNotifyEmail: getEnv("ORDER_NOTIFY_EMAIL", ""),
		SMTPAddr:         getEnv("SMTP_ADDR", "localhost:25"),
		SMTPFrom:         getEnv("SMTP_FROM", "no-reply@ecoomarse.local"),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),

		AdminToken: getEnv("ADMIN_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Postgres
	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	repo, err := repository.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer repo.Close()
	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to postgres at %s:%d", cfg.DBHost, cfg.DBPort)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Printf("Connected to redis at %s", cfg.RedisAddr)

	// Services
	cartStore := session.NewRedisCartStore(redisClient)
	listingCache := catalog.NewRedisListingCache(redisClient)
	catalogService := catalog.NewService(repo, repo, listingCache)
	cartService := cart.NewService(cartStore, catalogService)

	gatewayCfg := payment.Config{
		KeyID:     cfg.GatewayKeyID,
		KeySecret: cfg.GatewayKeySecret,
	}
	var gateway payment.Gateway
	if gatewayCfg.Enabled() {
		gateway = payment.NewClient(gatewayCfg)
		log.Printf("Online payments enabled")
	} else {
		log.Printf("Gateway credentials missing, online payments disabled; cash on delivery remains available")
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.OrderNotifyEmail != "" {
		var auth smtp.Auth
		if cfg.SMTPUser != "" {
			host := cfg.SMTPAddr
			if i := strings.IndexByte(host, ':'); i >= 0 {
				host = host[:i]
			}
			auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, host)
		}
		notifier = notify.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPFrom, cfg.OrderNotifyEmail, auth)
	}

	checkoutService := checkout.NewService(repo, repo, cartService, gateway, notifier, cfg.Currency)

	// Outbox poller
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := publisher.NewOutboxPoller(repo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	// Handlers
	productHandler := h.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)
	paymentHandler := h.NewPaymentHandler(checkoutService, cartService, cfg.RequestTimeout)
	adminHandler := h.NewAdminHandler(catalogService, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", productHandler.Home)
	r.Get("/products/", productHandler.List)
	r.Get("/about/", h.About)
	r.Get("/contact/", h.Contact)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Post("/add/{productID}/", cartHandler.Add)
		r.Post("/update/{productID}/", cartHandler.Update)
		r.Post("/remove/{productID}/", cartHandler.Remove)
		r.Post("/clear/", cartHandler.Clear)
	})

	r.Post("/checkout/", checkoutHandler.Create)
	r.Post("/payment/verify/", paymentHandler.Verify)

	r.Route("/admin/products", func(r chi.Router) {
		r.Use(h.AdminAuthMiddleware(cfg.AdminToken))
		r.Get("/", adminHandler.List)
		r.Post("/", adminHandler.Create)
		r.Put("/{productID}/", adminHandler.Update)
		r.Delete("/{productID}/", adminHandler.Deactivate)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
