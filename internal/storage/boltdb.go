package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

const (
	capturesBucket = "captures"

	// maxOccurrences caps how many capture timestamps are kept per image.
	maxOccurrences = 1000
)

// captureEntry is the persisted form of one image in the history database:
// the record plus every time its content was seen on the clipboard, newest
// first.
type captureEntry struct {
	Record      types.ImageRecord `json:"record"`
	Occurrences []time.Time       `json:"occurrences"`
}

// HistoryStore tracks clipboard image captures in a bbolt database, keyed by
// content hash. Re-capturing an image that is already known accumulates an
// occurrence instead of a new row, mirroring the dedup the image store does
// on disk.
type HistoryStore struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// HistoryConfig holds configuration for HistoryStore initialization.
type HistoryConfig struct {
	DBPath string
	Logger *zap.Logger
}

// NewHistoryStore opens (or creates) the history database.
func NewHistoryStore(cfg HistoryConfig) (*HistoryStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := bbolt.Open(cfg.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(capturesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	logger.Debug("history store initialized", zap.String("db_path", cfg.DBPath))

	return &HistoryStore{db: db, logger: logger}, nil
}

// SaveRecord stores a capture record, deduplicating by content hash.
func (s *HistoryStore) SaveRecord(record *types.ImageRecord) error {
	if record == nil || record.Hash == "" {
		return fmt.Errorf("record has no content hash")
	}

	now := record.Captured
	if now.IsZero() {
		now = time.Now()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(capturesBucket))

		entry := captureEntry{Record: *record}
		if v := b.Get([]byte(record.Hash)); v != nil {
			var existing captureEntry
			if err := json.Unmarshal(v, &existing); err == nil {
				entry = existing
			}
		}

		entry.Occurrences = append(entry.Occurrences, now)
		sort.Slice(entry.Occurrences, func(i, j int) bool {
			return entry.Occurrences[i].After(entry.Occurrences[j])
		})
		if len(entry.Occurrences) > maxOccurrences {
			entry.Occurrences = entry.Occurrences[:maxOccurrences]
		}
		entry.Record.Captured = entry.Occurrences[0]

		s.logger.Debug("saved capture record",
			zap.String("hash", record.Hash),
			zap.Int("occurrence_count", len(entry.Occurrences)))

		encoded, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal capture entry: %w", err)
		}
		return b.Put([]byte(record.Hash), encoded)
	})
}

// GetLatest returns the most recently captured record, or (nil, nil) when
// the history is empty.
func (s *HistoryStore) GetLatest() (*types.ImageRecord, error) {
	records, err := s.GetHistory(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// GetHistory returns up to limit records, newest first. A limit of zero or
// less returns everything.
func (s *HistoryStore) GetHistory(limit int) ([]*types.ImageRecord, error) {
	var records []*types.ImageRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(capturesBucket))
		return b.ForEach(func(k, v []byte) error {
			var entry captureEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				s.logger.Warn("skipping undecodable history entry",
					zap.String("hash", string(k)), zap.Error(err))
				return nil
			}
			record := entry.Record
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read capture history: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Captured.After(records[j].Captured)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetOccurrences returns every capture time recorded for the given content
// hash, newest first.
func (s *HistoryStore) GetOccurrences(hash string) ([]time.Time, error) {
	var occurrences []time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(capturesBucket))
		v := b.Get([]byte(hash))
		if v == nil {
			return nil
		}
		var entry captureEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return fmt.Errorf("failed to unmarshal capture entry: %w", err)
		}
		occurrences = entry.Occurrences
		return nil
	})
	if err != nil {
		return nil, err
	}
	return occurrences, nil
}

// DeleteRecord removes the history entry for a content hash. Deleting an
// unknown hash is not an error. The PNG file itself is left in place; the
// vault directory stays self-cataloging.
func (s *HistoryStore) DeleteRecord(hash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(capturesBucket)).Delete([]byte(hash))
	})
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
