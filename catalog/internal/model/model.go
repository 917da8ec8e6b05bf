package model

import (
	"time"

	"github.com/google/uuid"
)

// Storage column names, shared with the repository and the update builder.
const (
	ColISBN            = "isbn"
	ColTitle           = "title"
	ColAuthor          = "author"
	ColAuthors         = "authors"
	ColAuthorFirstName = "author_first_name"
	ColAuthorLastName  = "author_last_name"
	ColYear            = "year"
	ColPages           = "pages"
	ColAvailable       = "available"
	ColNotes           = "notes"
	ColCreatedAt       = "created_at"
	ColUpdatedAt       = "updated_at"
)

const (
	Available     = 1
	CheckedOut    = 0
	StatusFree    = "available"
	StatusLent    = "borrowed"
	UnknownAuthor = "Unknown Author"
)

// BookRecord is a persisted book. The author may be stored in one of the
// legacy shapes: a combined Author/Authors string or split first/last names.
type BookRecord struct {
	ISBN            string    `db:"isbn"`
	Title           string    `db:"title"`
	Author          *string   `db:"author"`
	Authors         *string   `db:"authors"`
	AuthorFirstName *string   `db:"author_first_name"`
	AuthorLastName  *string   `db:"author_last_name"`
	Year            *int      `db:"year"`
	Pages           *int      `db:"pages"`
	Available       int       `db:"available"`
	Notes           string    `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// PublicBook is the canonical shape returned by every read.
type PublicBook struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Authors         string    `json:"authors"`
	AuthorFirstName *string   `json:"authorFirstName,omitempty"`
	AuthorLastName  *string   `json:"authorLastName,omitempty"`
	ISBN            string    `json:"isbn"`
	Year            *int      `json:"year"`
	Pages           *int      `json:"pages"`
	Status          string    `json:"status"`
	Available       int       `json:"available"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ListBooks struct {
	Books      []PublicBook `json:"books"`
	Pagination Pagination   `json:"pagination"`
}

type Pagination struct {
	Total    int `json:"total"`
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
}

type CreateBookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Authors         string `json:"authors"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
	Year            *int   `json:"year" validate:"omitempty,gte=0"`
	PublicationDate string `json:"publication_date"`
	Pages           *int   `json:"pages" validate:"omitempty,gte=0"`
	Available       *int   `json:"available" validate:"omitempty,oneof=0 1"`
	Notes           string `json:"notes"`
}

// UpdateBookRequest carries only the fields the caller wants changed.
type UpdateBookRequest struct {
	ISBN            *string `json:"isbn"`
	Available       *int    `json:"available" validate:"omitempty,oneof=0 1"`
	Status          *string `json:"status"`
	Title           *string `json:"title"`
	AuthorFirstName *string `json:"authorFirstName"`
	AuthorLastName  *string `json:"authorLastName"`
	Notes           *string `json:"notes"`
}

// MutationPlan sets Set on the record keyed by Key and nothing else.
type MutationPlan struct {
	Key string
	Set map[string]any
}

type Favorite struct {
	UserID    string    `json:"userId" db:"user_id"`
	ISBN      string    `json:"isbn" db:"isbn"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type AdminFavoriteBook struct {
	PublicBook
	IsFavorite bool `json:"isFavorite"`
}

type AdminFavorites struct {
	Username  string              `json:"username"`
	Favorites []AdminFavoriteBook `json:"favorites"`
}

type ListAdminFavorites struct {
	Admins []AdminFavorites `json:"admins"`
}

// Member is a directory entry for a user that signed in.
type Member struct {
	UserID            string    `db:"user_id"`
	Username          string    `db:"username"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	PreferredUsername string    `db:"preferred_username"`
	LastSeenAt        time.Time `db:"last_seen_at"`
}

// DisplayName prefers name, then email, preferred username, username and
// finally a shortened user id.
func (m Member) DisplayName() string {
	for _, s := range []string{m.Name, m.Email, m.PreferredUsername, m.Username} {
		if s != "" {
			return s
		}
	}
	if m.UserID != "" {
		if len(m.UserID) > 8 {
			return m.UserID[:8]
		}
		return m.UserID
	}
	return "Unknown"
}

type EventType string

const (
	EventBookCreated     EventType = "book.created"
	EventBookUpdated     EventType = "book.updated"
	EventBookDeleted     EventType = "book.deleted"
	EventFavoriteAdded   EventType = "favorite.added"
	EventFavoriteRemoved EventType = "favorite.removed"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	ISBN       string    `json:"isbn"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, isbn, userID string, at time.Time) Event {
	return Event{ID: uuid.New(), Type: t, ISBN: isbn, UserID: userID, OccurredAt: at}
}
