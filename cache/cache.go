// Package cache keeps PokéAPI response bodies in a local SQLite database
// so repeated lookups and page flips do not hit the network.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one cached response body
type Entry struct {
	URL       string    `gorm:"primaryKey;column:url"`
	Body      []byte    `gorm:"not null"`
	FetchedAt time.Time `gorm:"index;not null"`
}

// TableName pins the table name
func (Entry) TableName() string {
	return "responses"
}

// Store is a TTL-bounded response cache
// Failures are logged and reported as misses, never surfaced to callers
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

// Open opens or creates the cache database at path
// An empty path keeps it in a private in-memory database, one per store
func Open(path string, ttl time.Duration, log zerolog.Logger) (*Store, error) {
	dsn := "file:pokedex-" + uuid.NewString() + "?mode=memory&cache=shared"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		dsn = path
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache %q: %w", dsn, err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	if path != "" {
		log.Info().Str("path", path).Dur("ttl", ttl).Msg("Using SQLite response cache")
	} else {
		log.Info().Dur("ttl", ttl).Msg("Using in-memory response cache")
	}

	return &Store{db: db, ttl: ttl, now: time.Now, log: log}, nil
}

// Get returns a body younger than the TTL
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	var e Entry
	err := s.db.WithContext(ctx).Where("url = ?", key).Take(&e).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("url", key).Msg("Cache read failed")
		}
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(e.FetchedAt) > s.ttl {
		return nil, false
	}
	return e.Body, true
}

// Put inserts or replaces a body
func (s *Store) Put(ctx context.Context, key string, body []byte) {
	e := Entry{URL: key, Body: body, FetchedAt: s.now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
	if err != nil {
		s.log.Warn().Err(err).Str("url", key).Msg("Cache write failed")
	}
}

// Prune deletes entries older than the TTL and returns how many were removed
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("fetched_at < ?", s.now().Add(-s.ttl)).Delete(&Entry{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune cache: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access sql interface: %w", err)
	}
	return sqlDB.Close()
}
