package domain

import "time"

// Article is the content aggregate. Author is the publishing user's username
// as free text — ownership checks compare it against the requester's
// username, no referential integrity is enforced against the users
// collection.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	JournalName string    `json:"journal_name"`
	Category    []string  `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
