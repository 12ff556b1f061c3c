package store // import "github.com/Xunop/e-library/internal/store"

import (
	"database/sql"
)

// Store reads and writes books. It holds no connection of its own: every
// operation borrows one from the pool for a single statement or transaction.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Ping() error {
	if err := s.db.Ping(); err != nil {
		return WrapError("ping", err)
	}
	return nil
}
