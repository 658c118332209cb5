package main

import (
	"context"
	"errors"
	"hotelres/internal/housekeeping"
	"hotelres/internal/inventory"
	"hotelres/internal/reservations/handler"
	"hotelres/pkg/app"
	"hotelres/pkg/config"
	"hotelres/pkg/kafka"
	kafka_config "hotelres/pkg/kafka/config"
	kafka_middleware "hotelres/pkg/kafka/middleware"
	"hotelres/pkg/tracing"
)

const ServiceName = "housekeeping"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Housekeeping worker")

	shutdownTracing := tracing.Init(ServiceName, cfg.OTLPEndpoint, cfg.Log)

	inv, err := inventory.ParseLayout(cfg.RoomLayout)
	if err != nil {
		cfg.Log.Fatal("Invalid room layout", "layout", cfg.RoomLayout, "error", err)
	}

	board := housekeeping.NewBoard()
	consumer := initConsumer(cfg, board)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Reservation event consumer stopped", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(inv, cfg.Log),
		housekeeping.NewBoardHandler(board, cfg.Log),
	)
	serverApp.OnShutdown("kafka-consumer", func(_ context.Context) error {
		cancel()
		return consumer.Close()
	})
	serverApp.OnShutdown("tracing", shutdownTracing)
	serverApp.Run()
}

func initConsumer(cfg *config.Config, board *housekeeping.Board) *kafka.Consumer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	eventHandler := housekeeping.NewEventHandler(board, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.ReservationEventsTopic,
		cfg.HousekeepingGroupID,
		cfg.ReservationEventsDLQTopic,
		eventHandler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.TracingConsumerMiddleware())
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	cfg.Log.Info("Housekeeping consumer initialized",
		"topic", cfg.ReservationEventsTopic,
		"group_id", cfg.HousekeepingGroupID,
	)
	return consumer
}
