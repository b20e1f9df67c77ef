package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"reviewdesk/internal/model"
)

var feedbackBucket = []byte("feedback")

// BoltFeedbackRepo keeps every record in a single bbolt file, keyed by a
// big-endian sequence so a reverse cursor walk is newest first.
type BoltFeedbackRepo struct {
	db *bolt.DB
}

// OpenBoltFeedbackRepo opens (or creates) the store file at path
func OpenBoltFeedbackRepo(path string) (*BoltFeedbackRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(feedbackBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltFeedbackRepo{db: db}, nil
}

// Close releases the file lock
func (r *BoltFeedbackRepo) Close() error {
	return r.db.Close()
}

func (r *BoltFeedbackRepo) Append(_ context.Context, record *model.FeedbackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(feedbackBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		stored := *record
		stored.ID = strconv.FormatUint(seq, 10)
		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		record.ID = stored.ID
		return nil
	})
}

func (r *BoltFeedbackRepo) ListAll(_ context.Context) ([]model.FeedbackRecord, error) {
	records := []model.FeedbackRecord{}
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(feedbackBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec model.FeedbackRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
