package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SimulationRow is the database row of a simulation record. Summary columns
// are denormalized for querying; Payload holds the full record.
type SimulationRow struct {
	ID            string          `gorm:"primaryKey;size:32"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	System        string          `gorm:"size:16;not null;index"`
	LoanAmount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	TermsInMonths int             `gorm:"not null"`
	MonthsSaved   int             `gorm:"not null"`
	InterestSaved decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Payload       []byte          `gorm:"type:jsonb;not null"`
}

func (SimulationRow) TableName() string { return "simulations" }

// GormStore persists records through gorm
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to postgres and migrates the simulations table
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an open database and migrates the simulations table
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&SimulationRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate simulations table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func toRow(record domain.SimulationRecord) (*SimulationRow, error) {
	payload, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}
	return &SimulationRow{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt,
		System:        string(record.Request.System),
		LoanAmount:    record.Request.LoanAmount,
		TermsInMonths: record.Request.TermsInMonths,
		MonthsSaved:   record.SummaryWithExtras.MonthsSaved,
		InterestSaved: record.SummaryWithExtras.InterestSaved,
		Payload:       payload,
	}, nil
}

func fromRow(row SimulationRow) (*domain.SimulationRecord, error) {
	return decodeRecord(row.Payload)
}

func (s *GormStore) Save(ctx context.Context, record domain.SimulationRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save simulation %s: %w", record.ID, err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*domain.SimulationRecord, error) {
	var row SimulationRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation %s: %w", id, err)
	}
	return fromRow(row)
}

func (s *GormStore) List(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	var rows []SimulationRow
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}

	records := make([]domain.SimulationRecord, 0, len(rows))
	for _, row := range rows {
		record, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
