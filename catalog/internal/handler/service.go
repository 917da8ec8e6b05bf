package handler

import (
	"context"

	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/catalog/internal/service"
	"github.com/Astemirdum/home-library/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListBooks(ctx context.Context, page, size int) (model.ListBooks, error)
	GetBook(ctx context.Context, isbn string) (model.PublicBook, error)
	CreateBook(ctx context.Context, id auth.Identity, req model.CreateBookRequest) (model.PublicBook, error)
	UpdateBook(ctx context.Context, id auth.Identity, isbn string, req model.UpdateBookRequest) (model.PublicBook, error)
	DeleteBook(ctx context.Context, id auth.Identity, isbn string) error

	ListFavorites(ctx context.Context, id auth.Identity) ([]model.Favorite, error)
	AddFavorite(ctx context.Context, id auth.Identity, isbn string) (model.Favorite, error)
	RemoveFavorite(ctx context.Context, id auth.Identity, isbn string) error
	AdminFavorites(ctx context.Context) (model.ListAdminFavorites, error)

	RecordMember(ctx context.Context, id auth.Identity) error
}

var _ CatalogService = (*service.Service)(nil)
