package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	treeState *TreeStateStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		treeState: NewTreeStateStore(NewQueryInterceptor(db)),
	}
}

func (s *Store) TreeState() *TreeStateStore {
	return s.treeState
}

func (s *Store) Close() error {
	return s.db.Close()
}
