package usecase

import (
	"time"

	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// newOutboxEvent сериализует поля события в protobuf Struct.
func newOutboxEvent(eventType OutboxEventType, articleID *int64, fields map[string]any) (*OutboxEvent, error) {
	eventID := uuid.NewString()
	now := time.Now().UTC()

	body := map[string]any{
		"event_id":   eventID,
		"event_type": string(eventType),
		"created_at": now.Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		body[k] = v
	}

	st, err := structpb.NewStruct(body)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	payload, err := proto.Marshal(st)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ArticleID: articleID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: now,
	}, nil
}

// DecodeEventPayload восстанавливает поля события из payload.
func DecodeEventPayload(payload []byte) (map[string]any, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(payload, &st); err != nil {
		return nil, err
	}

	return st.AsMap(), nil
}
