package model

import (
	"fmt"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
)

const MaxFavorites = 3

type DenyReason string

const (
	ReasonLimitReached DenyReason = "limit_reached"
	ReasonDuplicate    DenyReason = "duplicate"
	ReasonNotFound     DenyReason = "not_found"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err maps a denial to the error the caller reports.
func (d Decision) Err() error {
	switch d.Reason {
	case ReasonLimitReached:
		return errs.ErrLimitExceeded
	case ReasonDuplicate:
		return errs.ErrDuplicate
	case ReasonNotFound:
		return fmt.Errorf("book %w", errs.ErrNotFound)
	}
	return nil
}

// CanAddFavorite checks the limit first, then duplicates, then that the
// book exists (book is nil when it does not).
//
// The count is read before the write, so two concurrent adds by the same
// user can both pass and leave more than MaxFavorites entries.
func CanAddFavorite(current []Favorite, isbn string, book *BookRecord) Decision {
	if len(current) >= MaxFavorites {
		return Decision{Reason: ReasonLimitReached}
	}
	for _, f := range current {
		if f.ISBN == isbn {
			return Decision{Reason: ReasonDuplicate}
		}
	}
	if book == nil {
		return Decision{Reason: ReasonNotFound}
	}
	return Decision{Allowed: true}
}

// NewFavorite snapshots the title and author of b at the time of adding.
func NewFavorite(userID string, b BookRecord, now time.Time) Favorite {
	return Favorite{
		UserID:    userID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    AuthorDisplay(b),
		CreatedAt: now,
	}
}
