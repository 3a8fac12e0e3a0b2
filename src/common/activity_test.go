package common

import (
	"daily/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureSink struct {
	events chan *ActivityEvent
}

func (s *captureSink) Publish(event *ActivityEvent) error {
	s.events <- event
	return nil
}

func TestPublishActivityUsesSink(t *testing.T) {
	cs := &captureSink{events: make(chan *ActivityEvent, 1)}
	NewSink(cs)
	defer NewSink(nil)

	rentId := uint(42)
	PublishActivity(&ActivityEvent{
		ActivityName: types.ACTIVITY_RENT_REQUEST,
		ActivityType: types.ACTIVITY_SEND,
		Sender:       1,
		Receiver:     2,
		Rent:         &rentId,
	})

	select {
	case event := <-cs.events:
		assert.NotEmpty(t, event.EventID)
		assert.Equal(t, types.ACTIVITY_RENT_REQUEST, event.ActivityName)
		assert.Equal(t, types.ACTIVITY_SEND, event.ActivityType)
		assert.Equal(t, uint(1), event.Sender)
		assert.Equal(t, uint(2), event.Receiver)
		if assert.NotNil(t, event.Rent) {
			assert.Equal(t, uint(42), *event.Rent)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered to sink")
	}
}
