package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/catalog/internal/repository"
	"github.com/Astemirdum/home-library/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const adminFanOut = 4

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	dir     repository.Directory
	policy  *auth.Policy
	pub     Publisher
	now     func() time.Time
	members *memberCache
}

func NewService(
	repo repository.Repository,
	dir repository.Directory,
	policy *auth.Policy,
	pub Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		log:    log.Named("service"),
		repo:   repo,
		dir:    dir,
		policy: policy,
		pub:    pub,
		now:    func() time.Time { return time.Now().UTC() },

		members: newMemberCache(),
	}
}

func (s *Service) ListBooks(ctx context.Context, page, size int) (model.ListBooks, error) {
	books, total, err := s.repo.ListBooks(ctx, page, size)
	if err != nil {
		return model.ListBooks{}, s.storeErr("ListBooks", err)
	}
	return model.ListBooks{
		Books: model.ToPublicList(books),
		Pagination: model.Pagination{
			Total:    total,
			Page:     page,
			PageSize: size,
		},
	}, nil
}

func (s *Service) GetBook(ctx context.Context, isbn string) (model.PublicBook, error) {
	book, err := s.repo.GetBook(ctx, isbn)
	if err != nil {
		return model.PublicBook{}, s.storeErr("GetBook", err)
	}
	return model.ToPublic(book), nil
}

func (s *Service) CreateBook(ctx context.Context, id auth.Identity, req model.CreateBookRequest) (model.PublicBook, error) {
	if !s.policy.Authorize(id, auth.CreateBook) {
		return model.PublicBook{}, errs.ErrAuthorization
	}
	rec, err := model.ToStored(req, s.now())
	if err != nil {
		return model.PublicBook{}, err
	}
	created, err := s.repo.CreateBook(ctx, rec)
	if err != nil {
		return model.PublicBook{}, s.storeErr("CreateBook", err)
	}
	s.publish(ctx, model.EventBookCreated, created.ISBN, id.UserID)
	return model.ToPublic(created), nil
}

func (s *Service) UpdateBook(ctx context.Context, id auth.Identity, isbn string, req model.UpdateBookRequest) (model.PublicBook, error) {
	if !s.policy.Authorize(id, auth.UpdateBook) {
		return model.PublicBook{}, errs.ErrAuthorization
	}
	plan, err := model.BuildUpdate(isbn, req, s.now())
	if err != nil {
		return model.PublicBook{}, err
	}
	updated, err := s.repo.UpdateBook(ctx, plan)
	if err != nil {
		return model.PublicBook{}, s.storeErr("UpdateBook", err)
	}
	s.publish(ctx, model.EventBookUpdated, updated.ISBN, id.UserID)
	return model.ToPublic(updated), nil
}

// DeleteBook succeeds for absent books too. Favorites pointing at the book
// are left in place.
func (s *Service) DeleteBook(ctx context.Context, id auth.Identity, isbn string) error {
	if !s.policy.Authorize(id, auth.DeleteBook) {
		return errs.ErrAuthorization
	}
	if isbn == "" {
		return fmt.Errorf("%w: isbn", errs.ErrValidation)
	}
	if err := s.repo.DeleteBook(ctx, isbn); err != nil {
		return s.storeErr("DeleteBook", err)
	}
	s.publish(ctx, model.EventBookDeleted, isbn, id.UserID)
	return nil
}

func (s *Service) ListFavorites(ctx context.Context, id auth.Identity) ([]model.Favorite, error) {
	if err := s.favoritesAllowed(id); err != nil {
		return nil, err
	}
	items, err := s.repo.ListFavorites(ctx, id.UserID)
	if err != nil {
		return nil, s.storeErr("ListFavorites", err)
	}
	return items, nil
}

func (s *Service) AddFavorite(ctx context.Context, id auth.Identity, isbn string) (model.Favorite, error) {
	if err := s.favoritesAllowed(id); err != nil {
		return model.Favorite{}, err
	}
	current, err := s.repo.ListFavorites(ctx, id.UserID)
	if err != nil {
		return model.Favorite{}, s.storeErr("AddFavorite", err)
	}
	var book *model.BookRecord
	rec, err := s.repo.GetBook(ctx, isbn)
	switch {
	case err == nil:
		book = &rec
	case !errors.Is(err, errs.ErrNotFound):
		return model.Favorite{}, s.storeErr("AddFavorite", err)
	}

	if d := model.CanAddFavorite(current, isbn, book); !d.Allowed {
		return model.Favorite{}, d.Err()
	}
	fav := model.NewFavorite(id.UserID, *book, s.now())
	if err := s.repo.AddFavorite(ctx, fav); err != nil {
		return model.Favorite{}, s.storeErr("AddFavorite", err)
	}
	s.publish(ctx, model.EventFavoriteAdded, isbn, id.UserID)
	return fav, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, id auth.Identity, isbn string) error {
	if err := s.favoritesAllowed(id); err != nil {
		return err
	}
	if err := s.repo.RemoveFavorite(ctx, id.UserID, isbn); err != nil {
		return s.storeErr("RemoveFavorite", err)
	}
	s.publish(ctx, model.EventFavoriteRemoved, isbn, id.UserID)
	return nil
}

// AdminFavorites lists the favorites of every member of the admin group.
// Favorites whose book no longer exists are skipped.
func (s *Service) AdminFavorites(ctx context.Context) (model.ListAdminFavorites, error) {
	admins, err := s.dir.ListUsersInGroup(ctx, s.policy.AdminGroup())
	if err != nil {
		return model.ListAdminFavorites{}, s.storeErr("AdminFavorites", err)
	}

	res := make([]model.AdminFavorites, len(admins))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(adminFanOut)
	for i, admin := range admins {
		i, admin := i, admin
		g.Go(func() error {
			books, err := s.adminBooks(gCtx, admin.UserID)
			if err != nil {
				return err
			}
			res[i] = model.AdminFavorites{Username: admin.DisplayName(), Favorites: books}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.ListAdminFavorites{}, s.storeErr("AdminFavorites", err)
	}
	return model.ListAdminFavorites{Admins: res}, nil
}

func (s *Service) adminBooks(ctx context.Context, userID string) ([]model.AdminFavoriteBook, error) {
	favs, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	books := make([]model.AdminFavoriteBook, 0, len(favs))
	for _, f := range favs {
		b, err := s.repo.GetBook(ctx, f.ISBN)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		books = append(books, model.AdminFavoriteBook{PublicBook: model.ToPublic(b)})
	}
	return books, nil
}

// RecordMember stores an authenticated identity in the admin directory.
// Identities recorded recently with the same groups are not written again.
func (s *Service) RecordMember(ctx context.Context, id auth.Identity) error {
	if id.IsAnonymous() {
		return nil
	}
	now := s.now()
	if s.members.fresh(id, now) {
		return nil
	}
	if err := s.dir.RecordMember(ctx, id); err != nil {
		return err
	}
	s.members.remember(id, now)
	return nil
}

func (s *Service) favoritesAllowed(id auth.Identity) error {
	if id.IsAnonymous() {
		return errs.ErrAuthentication
	}
	if !s.policy.Authorize(id, auth.ManageOwnFavorites) {
		return errs.ErrAuthorization
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t model.EventType, isbn, userID string) {
	ev := model.NewEvent(t, isbn, userID, s.now())
	if err := s.pub.Publish(ctx, isbn, ev); err != nil {
		s.log.Warn("publish event", zap.String("type", string(t)), zap.String("isbn", isbn), zap.Error(err))
	}
}

// storeErr keeps the domain kinds reported by the repository and marks
// everything else as a store failure.
func (s *Service) storeErr(op string, err error) error {
	for _, kind := range []error{errs.ErrNotFound, errs.ErrConflict, errs.ErrDuplicate} {
		if errors.Is(err, kind) {
			return err
		}
	}
	s.log.Error(op, zap.Error(err))
	return fmt.Errorf("%w: %s: %w", errs.ErrStore, op, err)
}
