package notification

import (
	"fmt"

	"airhotel-web/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

const (
	EventToastAdded      = "toast.added"
	EventToastRemoved    = "toast.removed"
	EventWorkflowChanged = "workflow.changed"
)

type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcasts to every connected page
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Event is the websocket frame sent to the page
type Event struct {
	Type   string        `json:"type"`
	Toast  *models.Toast `json:"toast,omitempty"`
	ID     string        `json:"id,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string) *MessageBuilder {
	return &MessageBuilder{event: Event{Type: eventType}}
}

func (b *MessageBuilder) WithToast(toast models.Toast) *MessageBuilder {
	b.event.Toast = &toast
	b.event.ID = toast.ID
	return b
}

func (b *MessageBuilder) WithID(id string) *MessageBuilder {
	b.event.ID = id
	return b
}

func (b *MessageBuilder) WithReason(reason string) *MessageBuilder {
	b.event.Reason = reason
	return b
}

func (b *MessageBuilder) Build() string {
	data, err := json.Marshal(b.event)
	if err != nil {
		return `{"type":"` + b.event.Type + `"}`
	}
	return string(data)
}
