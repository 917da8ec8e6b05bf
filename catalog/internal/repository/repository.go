package repository

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Astemirdum/home-library/catalog/internal/errs"
	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/pkg/auth"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	GetBook(ctx context.Context, isbn string) (model.BookRecord, error)
	ListBooks(ctx context.Context, page, size int) ([]model.BookRecord, int, error)
	CreateBook(ctx context.Context, book model.BookRecord) (model.BookRecord, error)
	UpdateBook(ctx context.Context, plan model.MutationPlan) (model.BookRecord, error)
	DeleteBook(ctx context.Context, isbn string) error

	ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error)
	AddFavorite(ctx context.Context, fav model.Favorite) error
	RemoveFavorite(ctx context.Context, userID, isbn string) error
}

// Directory keeps the users seen by the service together with their groups.
type Directory interface {
	RecordMember(ctx context.Context, id auth.Identity) error
	ListUsersInGroup(ctx context.Context, group string) ([]model.Member, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName        = `books`
	favoritesTableName    = `favorites`
	membersTableName      = `members`
	memberGroupsTableName = `member_groups`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookColumns = []string{
	model.ColISBN, model.ColTitle, model.ColAuthor, model.ColAuthors,
	model.ColAuthorFirstName, model.ColAuthorLastName, model.ColYear, model.ColPages,
	model.ColAvailable, model.ColNotes, model.ColCreatedAt, model.ColUpdatedAt,
}

func (r *repository) GetBook(ctx context.Context, isbn string) (model.BookRecord, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{model.ColISBN: isbn}).
		ToSql()
	if err != nil {
		return model.BookRecord{}, err
	}
	var book model.BookRecord
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRecord{}, errs.ErrNotFound
		}
		return model.BookRecord{}, err
	}
	return book, nil
}

// ListBooks returns books ordered by title and the total count. A zero size
// returns the whole catalog.
func (r *repository) ListBooks(ctx context.Context, page, size int) ([]model.BookRecord, int, error) {
	sb := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy(model.ColTitle, model.ColISBN)
	if size > 0 {
		if page < 1 {
			page = 1
		}
		sb = sb.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}
	q, args, err := sb.ToSql()
	if err != nil {
		return nil, 0, err
	}
	books := make([]model.BookRecord, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, 0, err
	}
	if size == 0 {
		return books, len(books), nil
	}

	q, args, err = qb.Select("count(*)").From(booksTableName).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *repository) CreateBook(ctx context.Context, b model.BookRecord) (model.BookRecord, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(b.ISBN, b.Title, b.Author, b.Authors,
			b.AuthorFirstName, b.AuthorLastName, b.Year, b.Pages,
			b.Available, b.Notes, b.CreatedAt, b.UpdatedAt).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BookRecord{}, err
	}
	var res model.BookRecord
	if err := r.db.GetContext(ctx, &res, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.BookRecord{}, fmt.Errorf("book %s %w", b.ISBN, errs.ErrConflict)
		}
		r.log.Error("CreateBook", zap.String("q", q), zap.Error(err))
		return model.BookRecord{}, err
	}
	return res, nil
}

// UpdateBook applies plan to an existing book only.
func (r *repository) UpdateBook(ctx context.Context, plan model.MutationPlan) (model.BookRecord, error) {
	q, args, err := qb.Update(booksTableName).
		SetMap(plan.Set).
		Where(sq.Eq{model.ColISBN: plan.Key}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BookRecord{}, err
	}
	var res model.BookRecord
	if err := r.db.GetContext(ctx, &res, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookRecord{}, errs.ErrNotFound
		}
		r.log.Error("UpdateBook", zap.String("q", q), zap.Any("args", args))
		return model.BookRecord{}, err
	}
	return res, nil
}

func (r *repository) DeleteBook(ctx context.Context, isbn string) error {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{model.ColISBN: isbn}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *repository) ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	q, args, err := qb.Select("user_id", "isbn", "title", "author", "created_at").
		From(favoritesTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := make([]model.Favorite, 0)
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) AddFavorite(ctx context.Context, f model.Favorite) error {
	q, args, err := qb.Insert(favoritesTableName).
		Columns("user_id", "isbn", "title", "author", "created_at").
		Values(f.UserID, f.ISBN, f.Title, f.Author, f.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *repository) RemoveFavorite(ctx context.Context, userID, isbn string) error {
	q, args, err := qb.Delete(favoritesTableName).
		Where(sq.Eq{"user_id": userID, "isbn": isbn}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
