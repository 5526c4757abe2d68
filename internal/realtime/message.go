package realtime

import (
	"time"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

// inboundMessage is the envelope clients send over the wire. Only "ping" is
// understood; anything else is ignored.
type inboundMessage struct {
	Type string `json:"type"`
}

// Message is the JSON text frame pushed to clients, covering every outbound
// shape: welcome, pong, and the article change notifications. Fields not
// relevant to a given type are omitted.
type Message struct {
	Type      domain.EventType  `json:"type"`
	Message   string            `json:"message,omitempty"`
	Article   *domain.Article   `json:"article,omitempty"`
	ArticleID string            `json:"article_id,omitempty"`
	Count     int64             `json:"count,omitempty"`
	Criteria  map[string]string `json:"criteria,omitempty"`
	At        time.Time         `json:"at"`
}

func messageFromEvent(ev domain.ChangeEvent) Message {
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Message{
		Type:      ev.Type,
		Message:   ev.Message,
		Article:   ev.Article,
		ArticleID: ev.ArticleID,
		Count:     ev.Count,
		Criteria:  ev.Criteria,
		At:        at,
	}
}

func welcomeMessage() Message {
	return Message{
		Type:    domain.EventSystemWelcome,
		Message: "connected to newsroom updates",
		At:      time.Now().UTC(),
	}
}

func pongMessage() Message {
	return Message{
		Type: domain.EventPong,
		At:   time.Now().UTC(),
	}
}
