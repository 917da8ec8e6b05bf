package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAuthorDisplay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		rec  model.BookRecord
		want string
	}{
		{
			name: "author wins",
			rec:  model.BookRecord{Author: ptr("Frank Herbert"), AuthorFirstName: ptr("F"), AuthorLastName: ptr("H")},
			want: "Frank Herbert",
		},
		{
			name: "authors only",
			rec:  model.BookRecord{Authors: ptr("Ursula K. Le Guin")},
			want: "Ursula K. Le Guin",
		},
		{
			name: "split pair",
			rec:  model.BookRecord{AuthorFirstName: ptr("Isaac"), AuthorLastName: ptr("Asimov")},
			want: "Isaac Asimov",
		},
		{
			name: "split pair wins over authors",
			rec:  model.BookRecord{Authors: ptr("Legacy Authors"), AuthorFirstName: ptr("Isaac"), AuthorLastName: ptr("Asimov")},
			want: "Isaac Asimov",
		},
		{
			name: "single part wins over authors",
			rec:  model.BookRecord{Authors: ptr("Legacy Authors"), AuthorLastName: ptr("Tolstoy")},
			want: "Tolstoy",
		},
		{
			name: "first only",
			rec:  model.BookRecord{AuthorFirstName: ptr("Homer")},
			want: "Homer",
		},
		{
			name: "last only",
			rec:  model.BookRecord{AuthorFirstName: ptr(""), AuthorLastName: ptr("Tolstoy")},
			want: "Tolstoy",
		},
		{
			name: "blank author falls through",
			rec:  model.BookRecord{Author: ptr("  "), AuthorFirstName: ptr("Isaac"), AuthorLastName: ptr("Asimov")},
			want: "Isaac Asimov",
		},
		{
			name: "nothing",
			rec:  model.BookRecord{},
			want: model.UnknownAuthor,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.AuthorDisplay(tt.rec))
		})
	}
}

func TestToPublic(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := model.BookRecord{
		ISBN:            "111",
		Title:           "Dune",
		AuthorFirstName: ptr("Frank"),
		AuthorLastName:  ptr("Herbert"),
		Year:            ptr(1965),
		Available:       0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	got := model.ToPublic(rec)
	require.Equal(t, "111", got.ID)
	require.Equal(t, "111", got.ISBN)
	require.Equal(t, "Frank Herbert", got.Author)
	require.Equal(t, got.Author, got.Authors)
	require.Equal(t, "Frank", *got.AuthorFirstName)
	require.Equal(t, "borrowed", got.Status)
	require.Equal(t, "", got.Notes)
	require.Equal(t, 1965, *got.Year)

	rec.Available = 1
	require.Equal(t, "available", model.ToPublic(rec).Status)
	rec.Available = 7
	require.Equal(t, "borrowed", model.ToPublic(rec).Status)
}

func TestToStored(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("combined name is split", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{ISBN: "111", Title: "Dune", Authors: "Frank Herbert"}, now)
		require.NoError(t, err)
		require.Equal(t, "Frank", *rec.AuthorFirstName)
		require.Equal(t, "Herbert", *rec.AuthorLastName)
		require.Equal(t, "Frank Herbert", *rec.Author)
		require.Equal(t, "Frank Herbert", *rec.Authors)
		require.Equal(t, 1, rec.Available)
		require.Nil(t, rec.Year)
		require.Equal(t, now, rec.CreatedAt)
		require.Equal(t, now, rec.UpdatedAt)

		pub := model.ToPublic(rec)
		require.Equal(t, "available", pub.Status)
		require.Equal(t, "Frank Herbert", pub.Authors)
	})

	t.Run("remainder keeps middle names", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{ISBN: "1", Title: "t", Author: "Ursula K. Le Guin"}, now)
		require.NoError(t, err)
		require.Equal(t, "Ursula", *rec.AuthorFirstName)
		require.Equal(t, "K. Le Guin", *rec.AuthorLastName)
	})

	t.Run("single token", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{ISBN: "1", Title: "Iliad", Author: "Homer"}, now)
		require.NoError(t, err)
		require.Equal(t, "Homer", *rec.AuthorFirstName)
		require.Equal(t, "", *rec.AuthorLastName)
	})

	t.Run("explicit parts win", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{
			ISBN: "1", Title: "t", Authors: "Frank Herbert", AuthorLastName: "Herbert Jr.",
		}, now)
		require.NoError(t, err)
		require.Equal(t, "Frank", *rec.AuthorFirstName)
		require.Equal(t, "Herbert Jr.", *rec.AuthorLastName)
	})

	t.Run("pair only", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{
			ISBN: "1", Title: "t", AuthorFirstName: "Isaac", AuthorLastName: "Asimov",
		}, now)
		require.NoError(t, err)
		require.Nil(t, rec.Author)
		require.Equal(t, "Isaac Asimov", model.AuthorDisplay(rec))
	})

	t.Run("year from publication date", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{
			ISBN: "1", Title: "t", Author: "a", PublicationDate: "1965-08-01",
		}, now)
		require.NoError(t, err)
		require.Equal(t, 1965, *rec.Year)

		rec, err = model.ToStored(model.CreateBookRequest{
			ISBN: "1", Title: "t", Author: "a", PublicationDate: "1965-08-01", Year: ptr(1966),
		}, now)
		require.NoError(t, err)
		require.Equal(t, 1966, *rec.Year)

		rec, err = model.ToStored(model.CreateBookRequest{
			ISBN: "1", Title: "t", Author: "a", PublicationDate: "someday",
		}, now)
		require.NoError(t, err)
		require.Nil(t, rec.Year)
	})

	t.Run("explicit available", func(t *testing.T) {
		t.Parallel()
		rec, err := model.ToStored(model.CreateBookRequest{ISBN: "1", Title: "t", Author: "a", Available: ptr(0)}, now)
		require.NoError(t, err)
		require.Equal(t, 0, rec.Available)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			req  model.CreateBookRequest
			want string
		}{
			{req: model.CreateBookRequest{}, want: "missing required fields: isbn, title, author"},
			{req: model.CreateBookRequest{ISBN: "1", Author: "a"}, want: "missing required fields: title"},
			{req: model.CreateBookRequest{ISBN: "1", Title: "t", AuthorFirstName: "Isaac"}, want: "missing required fields: author"},
		}
		for _, tt := range tests {
			_, err := model.ToStored(tt.req, now)
			require.ErrorIs(t, err, errs.ErrValidation)
			require.EqualError(t, err, tt.want)
		}
	})
}
