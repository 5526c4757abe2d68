package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createArticleRequest struct {
	Title       string   `json:"title"        validate:"required,min=2"`
	Author      string   `json:"author"` // admin may publish on behalf of another author
	JournalName string   `json:"journal_name" validate:"required"`
	Category    []string `json:"category"`
	Description string   `json:"description"  validate:"required"`
	ImageURL    string   `json:"image_url"`
}

type updateArticleRequest struct {
	Title       string   `json:"title"`
	JournalName string   `json:"journal_name"`
	Category    []string `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

// --- Response types ---

// Response-only types owned by the transport layer. They are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// service changes.

type articleResponse struct {
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

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listArticlesResponse struct {
	Data       []articleResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type articlesResponse struct {
	Data []articleResponse `json:"data"`
}

type bulkResultResponse struct {
	Count    int64             `json:"count"`
	Criteria map[string]string `json:"criteria"`
}

type messageResponse struct {
	Message string `json:"message"`
}
