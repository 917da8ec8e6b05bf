package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
)

// BuildUpdate turns a sparse update into a plan for the record keyed by key,
// falling back to the isbn carried in the body. available wins over status.
// When neither is given the stored flag is left alone.
func BuildUpdate(key string, req UpdateBookRequest, now time.Time) (MutationPlan, error) {
	key = strings.TrimSpace(key)
	if key == "" && req.ISBN != nil {
		key = strings.TrimSpace(*req.ISBN)
	}
	if key == "" {
		return MutationPlan{}, fmt.Errorf("%w: isbn", errs.ErrValidation)
	}

	set := make(map[string]any, 6)
	switch {
	case req.Available != nil:
		set[ColAvailable] = *req.Available
	case req.Status != nil:
		if *req.Status == StatusFree {
			set[ColAvailable] = Available
		} else {
			set[ColAvailable] = CheckedOut
		}
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return MutationPlan{}, &errs.FieldError{Field: ColTitle, Reason: "must not be empty"}
		}
		set[ColTitle] = title
	}
	if req.AuthorFirstName != nil {
		set[ColAuthorFirstName] = *req.AuthorFirstName
	}
	if req.AuthorLastName != nil {
		set[ColAuthorLastName] = *req.AuthorLastName
	}
	if req.Notes != nil {
		set[ColNotes] = *req.Notes
	}
	set[ColUpdatedAt] = now

	return MutationPlan{Key: key, Set: set}, nil
}
