package main

import (
	"context"
	"hotelres/internal/inventory"
	"hotelres/internal/reservations/events"
	"hotelres/internal/reservations/handler"
	"hotelres/internal/reservations/repository"
	"hotelres/internal/reservations/service"
	"hotelres/internal/reservations/validator"
	"hotelres/pkg/app"
	"hotelres/pkg/config"
	"hotelres/pkg/kafka"
	kafka_config "hotelres/pkg/kafka/config"
	kafka_middleware "hotelres/pkg/kafka/middleware"
	"hotelres/pkg/tracing"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Reservations service")

	shutdownTracing := tracing.Init(ServiceName, cfg.OTLPEndpoint, cfg.Log)

	inv, err := inventory.ParseLayout(cfg.RoomLayout)
	if err != nil {
		cfg.Log.Fatal("Invalid room layout", "layout", cfg.RoomLayout, "error", err)
	}
	cfg.Log.Info("Room inventory loaded", "rooms", inv.Len(), "room_types", inv.Types())

	publisher, producer := initPublisher(cfg)
	reservationService := initServices(cfg, inv, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHealthHandler(inv, cfg.Log),
		handler.NewReservationHandler(reservationService, cfg.Log),
	)
	if producer != nil {
		serverApp.OnShutdown("kafka-producer", func(_ context.Context) error {
			return producer.Close()
		})
	}
	serverApp.OnShutdown("tracing", shutdownTracing)
	serverApp.Run()
}

func initServices(cfg *config.Config, inv *inventory.Inventory, publisher events.Publisher) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(cfg.Log, inv)
	reservationRepo := repository.NewInMemoryReservationRepository(cfg)
	reservationService := service.NewReservationService(
		reservationRepo,
		inv,
		reservationValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "id_base", cfg.ReservationIDBase)
	return reservationService
}

func initPublisher(cfg *config.Config) (events.Publisher, *kafka.Producer) {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Reservation events disabled")
		return events.NoopPublisher{}, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, cfg.ReservationEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())
	producer.Use(kafka_middleware.TracingProducerMiddleware())

	cfg.Log.Info("Reservation events enabled", "topic", cfg.ReservationEventsTopic)
	return events.NewKafkaPublisher(producer, ServiceName), producer
}
