package domain

import "time"

// EventType tags a change notification broadcast to live connections.
type EventType string

const (
	EventArticleCreated  EventType = "article.created"
	EventArticleUpdated  EventType = "article.updated"
	EventArticleDeleted  EventType = "article.deleted"
	EventArticlesUpdated EventType = "articles.updated"
	EventArticlesDeleted EventType = "articles.deleted"
	EventSystemWelcome   EventType = "system.welcome"
	EventPong            EventType = "pong"
)

// ChangeEvent is the typed value a mutation produces after its store write
// succeeds. It is transient: constructed, published, then discarded.
type ChangeEvent struct {
	Type      EventType
	Message   string
	Article   *Article          // single-article created/updated
	ArticleID string            // single-article deleted
	Count     int64             // bulk updated/deleted
	Criteria  map[string]string // bulk scope, e.g. {"title": "..."}
	At        time.Time
}

// ArticleCreated builds the event for a freshly inserted article.
func ArticleCreated(a *Article) ChangeEvent {
	return ChangeEvent{
		Type:    EventArticleCreated,
		Message: "new article published",
		Article: a,
	}
}

// ArticleUpdated builds the event for a single-article update.
func ArticleUpdated(a *Article) ChangeEvent {
	return ChangeEvent{
		Type:    EventArticleUpdated,
		Message: "article updated",
		Article: a,
	}
}

// ArticleDeleted builds the event for a single-article delete.
func ArticleDeleted(id string) ChangeEvent {
	return ChangeEvent{
		Type:      EventArticleDeleted,
		Message:   "article deleted",
		ArticleID: id,
	}
}

// ArticlesUpdated builds the event for a bulk update scoped by one field.
func ArticlesUpdated(count int64, field, value string) ChangeEvent {
	return ChangeEvent{
		Type:     EventArticlesUpdated,
		Message:  "articles updated",
		Count:    count,
		Criteria: map[string]string{field: value},
	}
}

// ArticlesDeleted builds the event for a bulk delete scoped by one field.
func ArticlesDeleted(count int64, field, value string) ChangeEvent {
	return ChangeEvent{
		Type:     EventArticlesDeleted,
		Message:  "articles deleted",
		Count:    count,
		Criteria: map[string]string{field: value},
	}
}
