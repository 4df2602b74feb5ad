package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	awspkg "github.com/yashrajoria/streetwear-backend/pkg/aws"
)

// Event types.
const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload fanned out to every sink.
type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     string             `json:"order_id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	Email       string             `json:"email"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NewOrderEvent builds the payload for order.
func NewOrderEvent(eventType string, order *models.Order) OrderEvent {
	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID.String(),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Email:       order.Email,
		OccurredAt:  time.Now().UTC(),
	}
}

// Publisher delivers order events. Delivery is best-effort: failures are
// logged and counted, never returned to the request path.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent)
}

// KafkaPublisher is the subset of KafkaProducer the fan-out needs.
type KafkaPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// DefaultPublishTimeout bounds one delivery to all sinks.
const DefaultPublishTimeout = 5 * time.Second

// FanoutPublisher sends each event to Kafka and SNS when they are configured.
// Delivery runs in the background, detached from the request context.
type FanoutPublisher struct {
	kafka    KafkaPublisher
	sns      awspkg.SNSPublisher
	topicArn string
	timeout  time.Duration
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewFanoutPublisher accepts nil sinks; a nil or unconfigured sink is skipped.
func NewFanoutPublisher(kafka KafkaPublisher, sns awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *FanoutPublisher {
	return &FanoutPublisher{kafka: kafka, sns: sns, topicArn: topicArn, timeout: DefaultPublishTimeout, logger: logger}
}

// PublishOrderEvent returns immediately; the event is delivered by a
// goroutine that outlives the request.
func (p *FanoutPublisher) PublishOrderEvent(ctx context.Context, evt OrderEvent) {
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, p.timeout)
		defer cancel()
		p.deliver(sendCtx, evt)
	}()
}

// Close waits for in-flight deliveries.
func (p *FanoutPublisher) Close() error {
	p.wg.Wait()
	return nil
}

func (p *FanoutPublisher) deliver(ctx context.Context, evt OrderEvent) {
	log := logger.For(ctx, p.logger)

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Error("Failed to marshal order event", zap.Error(err), zap.String("order_id", evt.OrderID))
		return
	}

	if p.kafka != nil {
		if err := p.kafka.Publish(ctx, evt.OrderID, payload); err != nil {
			metrics.EventsFailedTotal.WithLabelValues("kafka", evt.Type).Inc()
			log.Warn("Kafka publish failed", zap.Error(err), zap.String("order_id", evt.OrderID), zap.String("type", evt.Type))
		} else {
			metrics.EventsPublishedTotal.WithLabelValues("kafka", evt.Type).Inc()
		}
	}

	if p.sns != nil && p.topicArn != "" {
		attrs := map[string]string{"event_type": evt.Type}
		if err := p.sns.Publish(ctx, p.topicArn, payload, attrs); err != nil {
			metrics.EventsFailedTotal.WithLabelValues("sns", evt.Type).Inc()
			log.Warn("SNS publish failed", zap.Error(err), zap.String("order_id", evt.OrderID), zap.String("type", evt.Type))
		} else {
			metrics.EventsPublishedTotal.WithLabelValues("sns", evt.Type).Inc()
		}
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) {}
