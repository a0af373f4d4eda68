// ABOUTME: Store is the in-memory source of truth for bikes, logs and rides.
// ABOUTME: Every mutation writes the full snapshot to the blob store before it is published.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/storage"
)

// Store holds the current snapshot and persists it through a BlobStore.
// Each exported method is one transaction; a mutex serializes them.
type Store struct {
	mu    sync.Mutex
	blobs storage.BlobStore
	key   string
	log   *zap.Logger
	now   func() time.Time
	newID func() string
	state *models.Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the time source used for default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the function that assigns record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithKey sets the blob key the snapshot is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a store and loads the persisted snapshot. A missing,
// unreadable or corrupt blob starts the store empty; it is never an error.
func New(blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		key:   storage.DefaultKey,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load()
	return s
}

func (s *Store) load() *models.Snapshot {
	data, err := s.blobs.Get(s.key)
	if errors.Is(err, storage.ErrNotExist) {
		s.log.Debug("no persisted snapshot, starting empty", zap.String("key", s.key))
		return models.NewSnapshot()
	}
	if err != nil {
		s.log.Warn("read persisted snapshot failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return models.NewSnapshot()
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("persisted snapshot is corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return models.NewSnapshot()
	}
	s.log.Debug("loaded snapshot",
		zap.Int("bikes", len(snap.Bikes)),
		zap.Int("logs", len(snap.MaintenanceLogs)),
		zap.Int("rides", len(snap.Rides)))
	return &snap
}

// update applies fn to a copy of the current state and commits the copy.
// Callers must hold s.mu.
func (s *Store) update(op string, fn func(next *models.Snapshot)) error {
	next := s.state.Clone()
	fn(next)
	return s.commit(op, next)
}

// commit persists next and, only if the write succeeds, makes it current.
// Callers must hold s.mu.
func (s *Store) commit(op string, next *models.Snapshot) error {
	data, err := next.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %w", ErrPersistence, err)
	}
	if err := s.blobs.Set(s.key, data); err != nil {
		s.log.Error("persist snapshot failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.state = next
	s.log.Debug("persisted snapshot", zap.String("op", op), zap.Int("bytes", len(data)))
	return nil
}

// today is the current UTC calendar date.
func (s *Store) today() models.Date {
	return models.DateOf(s.now().UTC())
}

func (s *Store) bikeIndex(id string) int {
	return s.state.BikeIndex(id)
}
