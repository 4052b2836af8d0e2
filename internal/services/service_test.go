// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chaintrace/backend/internal/cache"
	"github.com/chaintrace/backend/internal/config"
	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/utils"
)

const (
	testOwner        = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testSupplier     = "0x1111111111111111111111111111111111111111"
	testManufacturer = "0x2222222222222222222222222222222222222222"
	testDistributor  = "0x3333333333333333333333333333333333333333"
	testRetailer     = "0x4444444444444444444444444444444444444444"
	testConsumer     = "0x5555555555555555555555555555555555555555"
	testOutsider     = "0x9999999999999999999999999999999999999999"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite: every pool connection is a separate database, so the
	// pool must stay at one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Participant{},
		&models.RegistryState{},
		&models.Product{},
		&models.TrackingEvent{},
		&models.AuditLog{},
	))

	require.NoError(t, db.Create(&models.RegistryState{ID: 1, OwnerAddress: testOwner}).Error)

	return db
}

// seedParticipants registers one participant of every role.
func seedParticipants(t *testing.T, registry *RegistryService) {
	t.Helper()

	participants := []struct {
		address string
		name    string
		role    models.Role
	}{
		{testSupplier, "Acme Raw Materials", models.RoleSupplier},
		{testManufacturer, "Acme Manufacturing", models.RoleManufacturer},
		{testDistributor, "Acme Distribution", models.RoleDistributor},
		{testRetailer, "Acme Retail", models.RoleRetailer},
		{testConsumer, "Alice", models.RoleConsumer},
	}

	for _, p := range participants {
		_, err := registry.RegisterParticipant(testOwner, &RegisterParticipantRequest{
			Address:  p.address,
			Name:     p.name,
			Location: "Springfield",
			Role:     p.role,
			Verified: true,
		})
		require.NoError(t, err)
	}
}

func newTestServices(t *testing.T) (*gorm.DB, *RegistryService, *ProductService, *TransitionService, *TrackingService, *VerificationService) {
	t.Helper()

	db := newTestDB(t)
	registry := NewRegistryService(db)
	ledger := NewLedgerService(db)
	products := NewProductService(db, registry, ledger, cache.NewScanCodeCache(config.RedisConfig{}))
	transitions := NewTransitionService(db, ledger)
	tracking := NewTrackingService(db, registry, ledger)
	verification := NewVerificationService(products, ledger)

	return db, registry, products, transitions, tracking, verification
}

func paginationDefaults() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func createTestProduct(t *testing.T, products *ProductService, scanCode string) *models.Product {
	t.Helper()

	product, err := products.CreateProduct(testSupplier, &CreateProductRequest{
		Name:        "Amoxicillin 500mg",
		Description: "Antibiotic capsules, 20 per box",
		ScanCode:    scanCode,
		ProductType: "pharmaceutical",
		BatchNumber: "B-2026-001",
		ExpiryDate:  "2028-06-30",
		Location:    "Springfield plant",
		Note:        "initial batch",
	})
	require.NoError(t, err)

	return product
}
