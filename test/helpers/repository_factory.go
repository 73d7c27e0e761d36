package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// TestRepositories holds the real repository instances for integration tests
type TestRepositories struct {
	Farms    *persistence.GormFarmRepository
	TxHashes *persistence.GormTxHashRepository
}

// NewTestRepositories wires the gorm repositories on top of db
func NewTestRepositories(db *gorm.DB, clock shared.Clock) *TestRepositories {
	return &TestRepositories{
		Farms:    persistence.NewGormFarmRepository(db, clock),
		TxHashes: persistence.NewGormTxHashRepository(db),
	}
}
