package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/erickbogarin/amortiza/internal/domain"
)

// ErrNotFound is returned when no record exists for an ID
var ErrNotFound = errors.New("simulation not found")

// DefaultListLimit caps List when the caller passes a non-positive limit
const DefaultListLimit = 50

// Store persists simulation records: the request and both summaries, never
// the schedules, which are cheap to regenerate.
type Store interface {
	Save(ctx context.Context, record domain.SimulationRecord) error
	Get(ctx context.Context, id string) (*domain.SimulationRecord, error)
	// List returns the most recent records first
	List(ctx context.Context, limit int) ([]domain.SimulationRecord, error)
	Close() error
}

// Open creates the store selected by the history settings
func Open(ctx context.Context, cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
	case config.BackendPostgres:
		return OpenPostgres(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// NewID returns a random 128-bit hex identifier
func NewID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b[:])
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func encodeRecord(record domain.SimulationRecord) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", record.ID, err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*domain.SimulationRecord, error) {
	var record domain.SimulationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &record, nil
}
