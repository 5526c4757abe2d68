package realtime

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
)

func TestDispatcher_FanOut(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	d := NewDispatcher(r, zerolog.Nop())

	a := newTestClient(r)
	b := newTestClient(r)
	r.Register(a)
	r.Register(b)
	receive(t, a) // drain welcomes
	receive(t, b)

	article := &domain.Article{ID: "art-1", Title: "X", Author: "alice"}
	d.Publish(domain.ArticleCreated(article))

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		assert.Equal(t, domain.EventArticleCreated, msg.Type)
		require.NotNil(t, msg.Article)
		assert.Equal(t, "X", msg.Article.Title)
	}

	// After B leaves, only A observes the next event.
	r.Unregister(b)
	d.Publish(domain.ArticleDeleted("art-1"))

	msg := receive(t, a)
	assert.Equal(t, domain.EventArticleDeleted, msg.Type)
	assert.Equal(t, "art-1", msg.ArticleID)
}

func TestDispatcher_LateSubscriberSeesNothing(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	d := NewDispatcher(r, zerolog.Nop())

	d.Publish(domain.ArticleCreated(&domain.Article{ID: "art-1", Title: "before"}))

	late := newTestClient(r)
	r.Register(late)

	// Only the welcome: nothing is queued or replayed for new connections.
	msg := receive(t, late)
	assert.Equal(t, domain.EventSystemWelcome, msg.Type)
	assertNoFrame(t, late)
}

func TestDispatcher_BulkEventCarriesCountAndCriteria(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	d := NewDispatcher(r, zerolog.Nop())

	c := newTestClient(r)
	r.Register(c)
	receive(t, c)

	d.Publish(domain.ArticlesUpdated(3, "author", "alice"))

	msg := receive(t, c)
	assert.Equal(t, domain.EventArticlesUpdated, msg.Type)
	assert.Equal(t, int64(3), msg.Count)
	assert.Equal(t, map[string]string{"author": "alice"}, msg.Criteria)
	assert.False(t, msg.At.IsZero())
}

func TestDispatcher_PrunesDeadClients(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	d := NewDispatcher(r, zerolog.Nop())

	healthy := newTestClient(r)
	dead := newTestClient(r)
	r.Register(healthy)
	r.Register(dead)
	receive(t, healthy)
	receive(t, dead)
	dead.close() // sends will fail from now on

	d.Publish(domain.ArticleCreated(&domain.Article{ID: "art-1", Title: "Y"}))

	msg := receive(t, healthy)
	assert.Equal(t, domain.EventArticleCreated, msg.Type)
	assert.Equal(t, 1, r.Len(), "dead client should have been pruned")
}
