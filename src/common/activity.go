package common

import (
	"daily/src/config"
	"daily/src/lib"
	"daily/src/types"
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// ActivityEvent is the message produced whenever something notable
// happens to a rent, product or thread. Consumers persist it as a
// notification and push it out to the realtime channels.
type ActivityEvent struct {
	EventID      string             `json:"event_id"`
	ActivityName types.ActivityName `json:"activity_name"`
	ActivityType types.ActivityType `json:"activity_type"`
	Sender       uint               `json:"sender"`
	Receiver     uint               `json:"receiver"`
	Rent         *uint              `json:"rent,omitempty"`
	Product      *uint              `json:"product,omitempty"`
	Payload      types.JSONB        `json:"payload,omitempty"`
}

// Sink delivers activity events to whoever wants them. Handlers only
// ever talk to this interface, never to the broker directly.
type Sink interface {
	Publish(event *ActivityEvent) error
}

type KafkaSink struct {
	ClientId string
	Topic    string
}

func (s *KafkaSink) Publish(event *ActivityEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	return lib.KafkaProduceMessage(s.ClientId, s.Topic, payload)
}

var sink Sink

func GetSink() Sink {
	if sink != nil {
		return sink
	}
	sink = &KafkaSink{ClientId: "activitiesProducer", Topic: config.ActivitiesTopic}
	return sink
}

// NewSink Replace the sink with a custom implementation
func NewSink(s Sink) Sink {
	sink = s
	return sink
}

// PublishActivity fires an event without blocking the request path.
// Delivery failures are logged, never surfaced to the caller.
func PublishActivity(event *ActivityEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	s := GetSink()
	go func() {
		if err := s.Publish(event); err != nil {
			log.Printf("[%s]: Error publishing activity %s/%s: %s\n", event.EventID, event.ActivityName, event.ActivityType, err.Error())
		}
	}()
}
