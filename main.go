package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/events"
	"github.com/rsmanito/expense-cards/server"
	"github.com/rsmanito/expense-cards/service"
	"github.com/rsmanito/expense-cards/storage"
)

func main() {
	cfg := config.Load()

	st := storage.New(cfg)
	defer st.Close()

	var pub events.Publisher = events.NopPublisher{}
	if cfg.RABBITMQ_URL != "" {
		producer, err := events.NewProducer(cfg.RABBITMQ_URL)
		if err != nil {
			log.Default().Printf("Card events disabled, broker unavailable: %v", err)
		} else {
			defer producer.Close()
			pub = producer
		}
	}

	s := server.New(service.New(st, cfg, pub), cfg)

	go func() {
		if err := s.Run(cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	log.Default().Printf("Running on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Default().Printf("Shutdown: %v", err)
	}
}
