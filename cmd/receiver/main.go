// Receiver de exemplo: um app externo que valida e guarda os webhooks da plataforma.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"apphooks/internal/config"
	"apphooks/internal/logger"
	"apphooks/internal/receiver"
)

func main() {
	_ = godotenv.Load()

	logger.Init(logger.Config{
		Level:  envOr("LOG_LEVEL", "info"),
		Format: envOr("LOG_FORMAT", "console"),
		Output: "stdout",
	})
	log := logger.WithComponent("receiver")

	secret := os.Getenv("RECEIVER_SECRET")
	if secret == "" {
		secret = config.DefaultWebhookSecret
		log.Warn("RECEIVER_SECRET não definido, usando o segredo global padrão")
	}

	capacity, _ := strconv.Atoi(os.Getenv("RECEIVER_CAPACITY"))
	port := envOr("RECEIVER_PORT", "4000")

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           receiver.New(secret, capacity, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Receiver iniciado", "webhook", fmt.Sprintf("http://localhost:%s/webhook", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Erro ao iniciar receiver", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Erro ao parar receiver", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
