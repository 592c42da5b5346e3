// Package store provides owner-scoped persistence operations. Every read and
// write is filtered by the caller's user id; a row owned by someone else is
// reported the same way as a row that does not exist.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound covers both "no such row" and "row owned by another user".
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the underlying database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// paginate applies skip/limit the way every list endpoint expects. Zero is a
// real limit and yields no rows; only a negative value falls back to the
// default page size.
func paginate(q *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit < 0 {
		limit = 100
	}
	return q.Limit(limit)
}
