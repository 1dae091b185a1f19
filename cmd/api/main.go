package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/config"
	"github.com/MrJamesThe3rd/haggle/internal/database"
	haggleHttp "github.com/MrJamesThe3rd/haggle/internal/http"
	importHandler "github.com/MrJamesThe3rd/haggle/internal/http/importcsv"
	meHandler "github.com/MrJamesThe3rd/haggle/internal/http/me"
	messageHandler "github.com/MrJamesThe3rd/haggle/internal/http/message"
	negotiationHandler "github.com/MrJamesThe3rd/haggle/internal/http/negotiation"
	paymentHandler "github.com/MrJamesThe3rd/haggle/internal/http/payment"
	productHandler "github.com/MrJamesThe3rd/haggle/internal/http/product"
	publicHandler "github.com/MrJamesThe3rd/haggle/internal/http/public"
	txHandler "github.com/MrJamesThe3rd/haggle/internal/http/transaction"
	"github.com/MrJamesThe3rd/haggle/internal/importer"
	"github.com/MrJamesThe3rd/haggle/internal/message"
	"github.com/MrJamesThe3rd/haggle/internal/message/pgnotify"
	messageStore "github.com/MrJamesThe3rd/haggle/internal/message/store"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
	negotiationStore "github.com/MrJamesThe3rd/haggle/internal/negotiation/store"
	"github.com/MrJamesThe3rd/haggle/internal/payment"
	"github.com/MrJamesThe3rd/haggle/internal/payment/paypal"
	paymentStore "github.com/MrJamesThe3rd/haggle/internal/payment/store"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	productStore "github.com/MrJamesThe3rd/haggle/internal/product/store"
	"github.com/MrJamesThe3rd/haggle/internal/profile"
	profileStore "github.com/MrJamesThe3rd/haggle/internal/profile/store"
	"github.com/MrJamesThe3rd/haggle/internal/recentview"
	recentStore "github.com/MrJamesThe3rd/haggle/internal/recentview/store"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
	txStore "github.com/MrJamesThe3rd/haggle/internal/transaction/store"
)

// broker is what the message service and the listener loop need.
type broker interface {
	message.Broker
	Run(ctx context.Context) error
}

// hubBroker serves a single instance; it has no listener to run.
type hubBroker struct {
	*message.Hub
}

func (hubBroker) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	messages := messageStore.New(db)

	var b broker = hubBroker{message.NewHub()}
	if cfg.Messaging.Broker == "postgres" {
		b = pgnotify.New(db, cfg.ConnectionString(), cfg.Messaging.Channel, messages)
	}

	var (
		profileService     = profile.NewService(profileStore.New(db))
		recentService      = recentview.NewService(recentStore.New(db))
		productService     = product.NewService(productStore.New(db), profileService, recentService)
		negotiationService = negotiation.NewService(negotiationStore.New(db), productService)
		messageService     = message.NewService(messages, negotiationService, b)
		transactionService = transaction.NewService(txStore.New(db))
		importService      = importer.NewService()
		gateway            = paypal.NewClient(paypal.Config{
			BaseURL:  cfg.PayPal.BaseURL,
			ClientID: cfg.PayPal.ClientID,
			Secret:   cfg.PayPal.Secret,
			Currency: cfg.PayPal.Currency,
			Timeout:  cfg.PayPal.Timeout,
		})
		paymentService = payment.NewService(paymentStore.New(db), gateway, negotiationService, transactionService)
	)

	if cfg.PayPal.ClientID == "" || cfg.PayPal.Secret == "" {
		slog.Warn("PayPal credentials missing; payment endpoints will fail")
	}

	router := haggleHttp.New(haggleHttp.Handlers{
		Public:       publicHandler.NewHandler(db, cfg.PayPal.PublicClientID, cfg.PayPal.Currency),
		Products:     productHandler.NewHandler(productService, recentService),
		Import:       importHandler.NewHandler(importService, productService),
		Me:           meHandler.NewHandler(profileService, productService, recentService),
		Transactions: txHandler.NewHandler(transactionService),
		Negotiations: negotiationHandler.NewHandler(negotiationService),
		Messages:     messageHandler.NewHandler(messageService, originPatterns(cfg.CORS.AllowedOrigins)),
		Payments:     paymentHandler.NewHandler(paymentService),
	}, haggleHttp.Options{
		Verifier:       auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "broker", cfg.Messaging.Broker)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		return b.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// originPatterns turns CORS origins into the host patterns the WebSocket
// handshake checks.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))

	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}

		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}

		patterns = append(patterns, u.Host)
	}

	return patterns
}
