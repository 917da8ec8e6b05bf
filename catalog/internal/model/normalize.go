package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
)

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// AuthorDisplay resolves the author of any stored shape: author, the split
// name pair or either part, then the legacy authors string.
func AuthorDisplay(b BookRecord) string {
	switch {
	case present(b.Author):
		return *b.Author
	case present(b.AuthorFirstName) && present(b.AuthorLastName):
		return *b.AuthorFirstName + " " + *b.AuthorLastName
	case present(b.AuthorFirstName):
		return *b.AuthorFirstName
	case present(b.AuthorLastName):
		return *b.AuthorLastName
	case present(b.Authors):
		return *b.Authors
	}
	return UnknownAuthor
}

func Status(available int) string {
	if available == Available {
		return StatusFree
	}
	return StatusLent
}

func ToPublic(b BookRecord) PublicBook {
	author := AuthorDisplay(b)
	return PublicBook{
		ID:              b.ISBN,
		Title:           b.Title,
		Author:          author,
		Authors:         author,
		AuthorFirstName: b.AuthorFirstName,
		AuthorLastName:  b.AuthorLastName,
		ISBN:            b.ISBN,
		Year:            b.Year,
		Pages:           b.Pages,
		Status:          Status(b.Available),
		Available:       b.Available,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func ToPublicList(bb []BookRecord) []PublicBook {
	res := make([]PublicBook, 0, len(bb))
	for _, b := range bb {
		res = append(res, ToPublic(b))
	}
	return res
}

// ToStored validates a creation request and converts it to the stored shape.
func ToStored(req CreateBookRequest, now time.Time) (BookRecord, error) {
	isbn := strings.TrimSpace(req.ISBN)
	title := strings.TrimSpace(req.Title)
	combined := strings.TrimSpace(req.Authors)
	if combined == "" {
		combined = strings.TrimSpace(req.Author)
	}
	first := strings.TrimSpace(req.AuthorFirstName)
	last := strings.TrimSpace(req.AuthorLastName)

	var missing []string
	if isbn == "" {
		missing = append(missing, "isbn")
	}
	if title == "" {
		missing = append(missing, "title")
	}
	if combined == "" && (first == "" || last == "") {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return BookRecord{}, fmt.Errorf("%w: %s", errs.ErrValidation, strings.Join(missing, ", "))
	}

	rec := BookRecord{
		ISBN:      isbn,
		Title:     title,
		Year:      req.Year,
		Pages:     req.Pages,
		Available: Available,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if combined != "" {
		rec.Author = &combined
		rec.Authors = &combined
		f, l, _ := strings.Cut(combined, " ")
		if first == "" {
			first = f
		}
		if last == "" {
			last = strings.TrimSpace(l)
		}
	}
	rec.AuthorFirstName = &first
	rec.AuthorLastName = &last

	if rec.Year == nil && req.PublicationDate != "" {
		rec.Year = yearOf(req.PublicationDate)
	}
	if req.Available != nil {
		rec.Available = *req.Available
	}
	return rec, nil
}

var dateLayouts = []string{
	time.RFC3339,
	time.DateOnly,
	"2006-01",
	"2006",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
}

// yearOf returns nil for dates it cannot parse.
func yearOf(date string) *int {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			y := t.Year()
			return &y
		}
	}
	return nil
}
