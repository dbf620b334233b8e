package reconcile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned when no database is configured for
// the run history.
var ErrHistoryDisabled = errors.New("run history is not configured")

// RunRecord is one persisted reconciliation pass.
type RunRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"index" json:"username"`
	Trigger    string    `json:"trigger"`
	Total      int       `json:"total"`
	Matched    int       `json:"matched"`
	Failures   int       `json:"failures"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryRepo persists reconciliation runs.
type HistoryRepo struct {
	db *gorm.DB
}

// NewHistoryRepo creates the repository and migrates its table.
func NewHistoryRepo(db *gorm.DB) (*HistoryRepo, error) {
	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		return nil, err
	}
	return &HistoryRepo{db: db}, nil
}

// Record stores one run.
func (r *HistoryRepo) Record(ctx context.Context, rec *RunRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Recent returns the latest runs for username, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, username string, limit int) ([]RunRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var records []RunRecord
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
