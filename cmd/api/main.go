package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bakeshop/internal/auth"
	"bakeshop/internal/config"
	"bakeshop/internal/db"
	"bakeshop/internal/domain"
	"bakeshop/internal/httpserver"
	"bakeshop/internal/mail"
	cartrepo "bakeshop/internal/repository/cart"
	orderrepo "bakeshop/internal/repository/order"
	cartsvc "bakeshop/internal/service/cart"
	ordersvc "bakeshop/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	fs, err := db.Connect(ctx, cfg.FirestoreProjectID)
	if err != nil {
		logger.Fatalf("connect to firestore: %v", err)
	}
	defer fs.Close()

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirestoreProjectID)
	if err != nil {
		logger.Fatalf("init firebase auth: %v", err)
	}

	var notifier ordersvc.Notifier = mail.Nop{}
	if cfg.SendGridAPIKey != "" {
		notifier = mail.NewSendGrid(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	} else {
		logger.Printf("SENDGRID_API_KEY not set, order confirmation mail disabled")
	}

	pricing := domain.Pricing{
		TaxRateBps:          cfg.TaxRateBps,
		DeliveryFeeCents:    cfg.DeliveryFeeCents,
		FreeDeliveryAtCents: cfg.FreeDeliveryAtCents,
	}

	cartRepo := cartrepo.NewFirestore(fs)
	cartService := cartsvc.New(cartRepo)
	orderRepo := orderrepo.NewFirestore(fs)
	orderService := ordersvc.New(orderRepo, cartRepo, notifier, pricing, logger)

	srv := httpserver.New(cfg.HTTPAddr, fs, httpserver.Deps{
		CartSvc:     cartService,
		OrderSvc:    orderService,
		Verifier:    verifier,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
