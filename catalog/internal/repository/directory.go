package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/home-library/catalog/internal/model"
	"github.com/Astemirdum/home-library/pkg/auth"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// RecordMember upserts the member and replaces its group list.
func (r *repository) RecordMember(ctx context.Context, id auth.Identity) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck

	q, args, err := qb.Insert(membersTableName).
		Columns("user_id", "username", "name", "email", "preferred_username", "last_seen_at").
		Values(id.UserID, id.Username, id.Name, id.Email, id.PreferredUsername, time.Now().UTC()).
		Suffix(`on conflict (user_id) do update set
			username = excluded.username,
			name = excluded.name,
			email = excluded.email,
			preferred_username = excluded.preferred_username,
			last_seen_at = excluded.last_seen_at`).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "upsert member")
	}

	q, args, err = qb.Delete(memberGroupsTableName).Where(sq.Eq{"user_id": id.UserID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "clear groups")
	}

	if len(id.Groups) > 0 {
		ib := qb.Insert(memberGroupsTableName).Columns("user_id", "group_name")
		for _, g := range id.Groups {
			ib = ib.Values(id.UserID, g)
		}
		q, args, err = ib.Suffix("on conflict do nothing").ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return errors.Wrap(err, "insert groups")
		}
	}
	return tx.Commit()
}

func (r *repository) ListUsersInGroup(ctx context.Context, group string) ([]model.Member, error) {
	q, args, err := qb.Select("m.user_id", "m.username", "m.name", "m.email", "m.preferred_username", "m.last_seen_at").
		From(membersTableName + " m").
		Join(memberGroupsTableName + " g on g.user_id = m.user_id").
		Where(sq.Eq{"g.group_name": group}).
		OrderBy("m.user_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	members := make([]model.Member, 0)
	if err := r.db.SelectContext(ctx, &members, q, args...); err != nil {
		return nil, err
	}
	return members, nil
}
