package ports

import "github.com/newsdesk/newsroom-api/internal/core/domain"

// EventPublisher fans a change event out to every live connection.
//
// Publish is best-effort: delivery failures to individual connections are
// absorbed by the implementation and never surface to the caller. Callers
// invoke it strictly after the corresponding store write succeeded.
type EventPublisher interface {
	Publish(event domain.ChangeEvent)
}
