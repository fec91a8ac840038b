package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	EventOrderCreated    = "order.created"
	EventContactReceived = "contact.received"
)

// Publisher — транспорт событий (Kafka или RabbitMQ).
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, payload []byte) error
}

// EventNotifier публикует события магазина в брокер.
// Событие — protobuf Struct с полями event_id, event_type, occurred_at и data.
type EventNotifier struct {
	name      string
	publisher Publisher
	now       func() time.Time
}

func NewEventNotifier(name string, publisher Publisher) *EventNotifier {
	return &EventNotifier{
		name:      name,
		publisher: publisher,
		now:       time.Now,
	}
}

func (n *EventNotifier) Name() string {
	return n.name
}

func (n *EventNotifier) NotifyOrder(ctx context.Context, order *domain.Order) error {
	return n.publish(ctx, order.ID, EventOrderCreated, order)
}

func (n *EventNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	return n.publish(ctx, msg.Email, EventContactReceived, msg)
}

func (n *EventNotifier) publish(ctx context.Context, key, eventType string, data any) error {
	payload, err := EncodeEvent(eventType, n.now(), data)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return n.publisher.Publish(ctx, key, eventType, payload)
}

// EncodeEvent сериализует data через JSON-представление домена в protobuf Struct.
func EncodeEvent(eventType string, at time.Time, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	event, err := structpb.NewStruct(map[string]any{
		"event_id":    uuid.NewString(),
		"event_type":  eventType,
		"occurred_at": at.UTC().Format(time.RFC3339Nano),
		"data":        fields,
	})
	if err != nil {
		return nil, err
	}

	return proto.Marshal(event)
}
