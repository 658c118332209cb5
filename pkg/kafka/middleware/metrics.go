package kafka_middleware

import (
	"context"
	"time"

	"hotelres/pkg/kafka"
	"hotelres/pkg/metrics"
)

const (
	directionPublish = "publish"
	directionConsume = "consume"
)

func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(directionPublish, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		return observe(directionConsume, msg.Topic, func() error { return next(ctx, msg) })
	}
}

func observe(direction, topic string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.KafkaMessageDuration.WithLabelValues(direction, topic).Observe(time.Since(start).Seconds())

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.KafkaMessagesTotal.WithLabelValues(direction, topic, outcome).Inc()
	return err
}
