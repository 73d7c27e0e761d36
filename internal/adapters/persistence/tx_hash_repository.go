package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/marketplace"
	"github.com/andrescamacho/homestead-go/pkg/utils"
)

// GormTxHashRepository implements marketplace.TxHashStore using GORM
type GormTxHashRepository struct {
	db *gorm.DB
}

// NewGormTxHashRepository creates a new GORM transaction hash repository
func NewGormTxHashRepository(db *gorm.DB) *GormTxHashRepository {
	return &GormTxHashRepository{db: db}
}

// SaveTxHash stores a submitted transaction. Failures are logged, not returned:
// the transaction is already on its way and must not be reported as failed.
func (r *GormTxHashRepository) SaveTxHash(ctx context.Context, record marketplace.TxRecord) {
	if err := r.Create(ctx, record); err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelError, "failed to save transaction hash", map[string]interface{}{
			"event": record.Event,
			"hash":  record.Hash,
			"error": err.Error(),
		})
	}
}

// Create persists a transaction record
func (r *GormTxHashRepository) Create(ctx context.Context, record marketplace.TxRecord) error {
	model := &TxHashModel{
		ID:        utils.GenerateRecordID(record.Event),
		Event:     record.Event,
		Hash:      record.Hash,
		SessionID: record.SessionID,
		Deadline:  record.Deadline,
		CreatedAt: record.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction hash: %w", result.Error)
	}
	return nil
}

// FindBySession returns the transactions submitted with a session id, oldest first
func (r *GormTxHashRepository) FindBySession(ctx context.Context, sessionID string) ([]marketplace.TxRecord, error) {
	var models []TxHashModel
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find transaction hashes: %w", result.Error)
	}

	records := make([]marketplace.TxRecord, 0, len(models))
	for _, m := range models {
		records = append(records, marketplace.TxRecord{
			Event:     m.Event,
			Hash:      m.Hash,
			SessionID: m.SessionID,
			Deadline:  m.Deadline,
			CreatedAt: m.CreatedAt,
		})
	}
	return records, nil
}
