package webhook

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind tags the decoded variant of an inbound event.
type EventKind string

const (
	KindMessage  EventKind = "message"
	KindFollow   EventKind = "follow"
	KindUnfollow EventKind = "unfollow"
)

// Event is the validated form of one inbound webhook event. Message is set
// only when Kind is KindMessage.
type Event struct {
	Kind      EventKind
	UserID    string
	Timestamp time.Time
	Message   *MessageContent
}

// MessageContent holds the message subtype and, for text messages, the raw
// text.
type MessageContent struct {
	Type string
	Text string
}

type wireEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Source    struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type wirePayload struct {
	Events *[]wireEvent `json:"events"`
}

// DecodeBatch parses a webhook request body into validated events.
// A body without an events list is an error; individual events with an
// unknown type or missing required fields are dropped (returned count may
// be smaller than the wire count). Decoding fails closed: an event only
// comes out if every field its kind requires is present.
func DecodeBatch(body []byte) ([]Event, error) {
	var payload wirePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload.Events == nil {
		return nil, fmt.Errorf("payload has no events list")
	}

	events := make([]Event, 0, len(*payload.Events))
	for _, w := range *payload.Events {
		ev, err := decodeEvent(w)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(w wireEvent) (Event, error) {
	if w.Timestamp <= 0 {
		return Event{}, fmt.Errorf("missing timestamp")
	}
	// platform timestamps are epoch milliseconds; records keep second
	// precision
	ts := time.Unix(w.Timestamp/1000, 0)

	switch EventKind(w.Type) {
	case KindMessage:
		if w.Source.UserID == "" {
			return Event{}, fmt.Errorf("message event without source.userId")
		}
		if w.Message.Type == "" {
			return Event{}, fmt.Errorf("message event without message.type")
		}
		return Event{
			Kind:      KindMessage,
			UserID:    w.Source.UserID,
			Timestamp: ts,
			Message:   &MessageContent{Type: w.Message.Type, Text: w.Message.Text},
		}, nil
	case KindFollow:
		if w.Source.UserID == "" {
			return Event{}, fmt.Errorf("follow event without source.userId")
		}
		return Event{Kind: KindFollow, UserID: w.Source.UserID, Timestamp: ts}, nil
	case KindUnfollow:
		userID := w.Source.UserID
		if userID == "" {
			userID = "Unknown"
		}
		return Event{Kind: KindUnfollow, UserID: userID, Timestamp: ts}, nil
	default:
		return Event{}, fmt.Errorf("unknown event type %q", w.Type)
	}
}
