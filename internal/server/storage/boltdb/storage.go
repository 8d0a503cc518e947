package boltdb

import (
	"fmt"

	"go.etcd.io/bbolt"
)

// bucketRevoked holds revoked token records keyed by jti.
var bucketRevoked = []byte("revoked")

// Ledger represents the BoltDB token revocation ledger.
type Ledger struct {
	db *bbolt.DB
}

// New creates a new BoltDB ledger instance.
// dbPath is the path to the BoltDB database file.
func New(dbPath string) (*Ledger, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	ledger := &Ledger{db: db}

	if err := ledger.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return ledger, nil
}

// Close closes the database connection
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// initBuckets creates the required buckets if they do not exist.
func (l *Ledger) initBuckets() error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRevoked); err != nil {
			return fmt.Errorf("failed to create revoked bucket: %w", err)
		}
		return nil
	})
}
