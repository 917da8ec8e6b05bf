package app

import (
	"context"
	"os"
	"strings"

	"github.com/Astemirdum/home-library/pkg/circuit_breaker"
	"github.com/Astemirdum/home-library/pkg/jsonx"
	"github.com/Astemirdum/home-library/uploader/client"
	"github.com/moraes/isbn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Book is one entry of the books file.
type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	AuthorFirst string `json:"author_first"`
	AuthorLast  string `json:"author_last"`
}

type Summary struct {
	Uploaded int `json:"uploaded"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

type BookCreator interface {
	CreateBook(ctx context.Context, p client.BookPayload) error
}

func LoadBooks(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read books file")
	}
	var books []Book
	if err := jsonx.Unmarshal(data, &books); err != nil {
		return nil, errors.Wrap(err, "parse books file")
	}
	return books, nil
}

func Payload(b Book) client.BookPayload {
	return client.BookPayload{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Authors:         strings.TrimSpace(b.AuthorFirst + " " + b.AuthorLast),
		AuthorFirstName: b.AuthorFirst,
		AuthorLastName:  b.AuthorLast,
	}
}

func validISBN(s string) bool {
	return isbn.Validate(strings.NewReplacer("-", "", " ", "").Replace(s))
}

// Upload posts the books one by one. Individual failures are logged and
// counted, never returned.
func Upload(ctx context.Context, books []Book, creator BookCreator, strictISBN bool, log *zap.Logger) Summary {
	var sum Summary
	for _, b := range books {
		if ctx.Err() != nil {
			sum.Skipped++
			continue
		}
		fields := []zap.Field{zap.String("isbn", b.ISBN), zap.String("title", b.Title)}
		if !validISBN(b.ISBN) {
			if strictISBN {
				log.Warn("invalid isbn, skipped", fields...)
				sum.Skipped++
				continue
			}
			log.Warn("invalid isbn", fields...)
		}

		err := creator.CreateBook(ctx, Payload(b))
		switch {
		case err == nil:
			log.Info("uploaded", fields...)
			sum.Uploaded++
		case errors.Is(err, circuit_breaker.ErrOpenCB):
			log.Warn("skipped, endpoint unavailable", fields...)
			sum.Skipped++
		default:
			log.Error("failed to upload", append(fields, zap.Error(err))...)
			sum.Failed++
		}
	}
	return sum
}
