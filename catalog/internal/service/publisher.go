package service

//go:generate go run github.com/golang/mock/mockgen -source=publisher.go -destination=mocks/mock.go

import (
	"context"
)

// Publisher delivers domain events keyed by isbn.
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}
