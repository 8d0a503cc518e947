package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/usersvc/internal/models"
)

// Revoke records a token as invalidated. The record keeps the token's own
// expiry so DeleteExpired can drop it once the token would be rejected by
// signature verification anyway.
func (l *Ledger) Revoke(ctx context.Context, token *models.RevokedToken) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked bucket not found")
		}

		data, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("failed to marshal revoked token: %w", err)
		}

		if err := bucket.Put([]byte(token.JTI), data); err != nil {
			return fmt.Errorf("failed to save revoked token: %w", err)
		}

		return nil
	})
}

// IsRevoked reports whether the token with this jti has been revoked.
func (l *Ledger) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool

	err := l.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked bucket not found")
		}

		revoked = bucket.Get([]byte(jti)) != nil
		return nil
	})

	if err != nil {
		return false, err
	}

	return revoked, nil
}

// DeleteExpired removes ledger entries whose token expiry is before now.
func (l *Ledger) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	deleted := 0

	err := l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked bucket not found")
		}

		cursor := bucket.Cursor()
		var expired [][]byte

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var token models.RevokedToken
			if err := json.Unmarshal(v, &token); err != nil {
				// Unreadable entries are dropped as well, the jti
				// cannot be checked against them anyway.
				expired = append(expired, append([]byte(nil), k...))
				continue
			}
			if token.ExpiresAt.Before(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
		}

		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete revoked token: %w", err)
			}
			deleted++
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return deleted, nil
}
