package kafka_middleware

import (
	"context"

	"hotelres/pkg/kafka"
	"hotelres/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingProducerMiddleware writes the caller's trace context into the message headers.
func TracingProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		ctx, span := tracing.Tracer().Start(ctx, "kafka.publish "+msg.Topic,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(
				attribute.String("messaging.destination", msg.Topic),
				attribute.String("messaging.message_id", msg.GetEventID()),
			),
		)
		defer span.End()

		headers := make(map[string]string, len(msg.Headers)+2)
		for k, v := range msg.Headers {
			headers[k] = v
		}
		tracing.InjectHeaders(ctx, headers)
		msg.Headers = headers

		err := next(ctx, msg)
		tracing.RecordError(span, err)
		return err
	}
}

// TracingConsumerMiddleware continues the producer's trace when handling a message.
func TracingConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		ctx = tracing.ExtractHeaders(ctx, msg.Headers)
		ctx, span := tracing.Tracer().Start(ctx, "kafka.consume "+msg.Topic,
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(
				attribute.String("messaging.source", msg.Topic),
				attribute.String("messaging.message_id", msg.GetEventID()),
				attribute.String("messaging.event_type", msg.GetEventType()),
			),
		)
		defer span.End()

		err := next(ctx, msg)
		tracing.RecordError(span, err)
		return err
	}
}
