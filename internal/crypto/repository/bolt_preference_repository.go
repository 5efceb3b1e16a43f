// Package repository implements the preference namespace on top of bbolt.
package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	apperrors "github.com/celox/clipvault/internal/errors"
)

var prefsBucket = []byte(cryptoDomain.PrefsBucket)

// BoltPreferenceRepository stores preferences and secret records in a single bbolt bucket.
//
// Every write runs in its own bbolt transaction, so a value is either absent or
// complete. Concurrent writers to the same key resolve as last writer wins.
type BoltPreferenceRepository struct {
	db *bbolt.DB
}

// OpenBoltPreferenceRepository opens (creating if needed) the preference file at path.
func OpenBoltPreferenceRepository(path string) (*BoltPreferenceRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, apperrors.Wrap(err, "failed to create preference directory")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open preference database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, "failed to create preference bucket")
	}

	return &BoltPreferenceRepository{db: db}, nil
}

// Close releases the underlying file.
func (r *BoltPreferenceRepository) Close() error {
	return r.db.Close()
}

// Get returns a copy of the value stored under key.
func (r *BoltPreferenceRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(prefsBucket).Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, apperrors.Wrapf(err, "failed to read preference %s", key)
	}
	return value, value != nil, nil
}

// Put stores value under key, overwriting any previous value.
func (r *BoltPreferenceRepository) Put(ctx context.Context, key string, value []byte) error {
	return r.Update(ctx, func(w cryptoDomain.PreferenceWriter) error {
		return w.Put(key, value)
	})
}

// Delete removes keys. Missing keys are ignored.
func (r *BoltPreferenceRepository) Delete(ctx context.Context, keys ...string) error {
	return r.Update(ctx, func(w cryptoDomain.PreferenceWriter) error {
		return w.Delete(keys...)
	})
}

// Exists reports whether key holds a value.
func (r *BoltPreferenceRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := r.Get(ctx, key)
	return ok, err
}

// GetBool returns the boolean stored under key or def when absent.
func (r *BoltPreferenceRepository) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(string(v))
	if err != nil {
		return def, apperrors.Wrapf(apperrors.ErrInvalidInput, "preference %s is not a boolean", key)
	}
	return b, nil
}

// PutBool stores a boolean under key.
func (r *BoltPreferenceRepository) PutBool(ctx context.Context, key string, value bool) error {
	return r.Put(ctx, key, []byte(strconv.FormatBool(value)))
}

// GetInt returns the integer stored under key or def when absent.
func (r *BoltPreferenceRepository) GetInt(ctx context.Context, key string, def int) (int, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return def, apperrors.Wrapf(apperrors.ErrInvalidInput, "preference %s is not an integer", key)
	}
	return n, nil
}

// PutInt stores an integer under key.
func (r *BoltPreferenceRepository) PutInt(ctx context.Context, key string, value int) error {
	return r.Put(ctx, key, []byte(strconv.Itoa(value)))
}

// Update applies fn atomically: either every write lands or none does.
func (r *BoltPreferenceRepository) Update(ctx context.Context, fn func(w cryptoDomain.PreferenceWriter) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		return fn(&boltWriter{bucket: tx.Bucket(prefsBucket)})
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to update preferences")
	}
	return nil
}

type boltWriter struct {
	bucket *bbolt.Bucket
}

func (w *boltWriter) Put(key string, value []byte) error {
	if err := w.bucket.Put([]byte(key), value); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func (w *boltWriter) PutBool(key string, value bool) error {
	return w.Put(key, []byte(strconv.FormatBool(value)))
}

func (w *boltWriter) Delete(keys ...string) error {
	for _, key := range keys {
		if err := w.bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete preference %s: %w", key, err)
		}
	}
	return nil
}
