// internal/services/tracking_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/models"
)

type TrackingServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	registry    *RegistryService
	products    *ProductService
	transitions *TransitionService
	tracking    *TrackingService
}

func (suite *TrackingServiceTestSuite) SetupTest() {
	db, registry, products, transitions, tracking, _ := newTestServices(suite.T())
	suite.db = db
	suite.registry = registry
	suite.products = products
	suite.transitions = transitions
	suite.tracking = tracking

	seedParticipants(suite.T(), registry)
}

func (suite *TrackingServiceTestSuite) runFullLifecycle(scanCode string) uint64 {
	product := createTestProduct(suite.T(), suite.products, scanCode)

	handoffs := []struct {
		caller    string
		recipient string
	}{
		{testSupplier, testManufacturer},
		{testManufacturer, testDistributor},
		{testDistributor, testRetailer},
		{testRetailer, testConsumer},
		{testConsumer, testConsumer},
	}
	for _, h := range handoffs {
		_, err := suite.transitions.AdvanceStage(h.caller, product.ID, &AdvanceStageRequest{
			Recipient: h.recipient,
			Location:  "Springfield",
		})
		suite.NoError(err)
	}

	return product.ID
}

func (suite *TrackingServiceTestSuite) TestHistoryCoversEveryStage() {
	productID := suite.runFullLifecycle("QR-0001")

	steps, found, err := suite.tracking.GetTrackingHistory(productID)
	suite.NoError(err)
	suite.True(found)
	suite.Len(steps, 6) // genesis + five handoffs

	wantStages := []models.Stage{
		models.StageInit,
		models.StageRawMaterialSupplied,
		models.StageManufactured,
		models.StageDistributed,
		models.StageAtRetailer,
		models.StageSold,
	}
	for i, step := range steps {
		suite.Equal(i+1, step.Step)
		suite.Equal(wantStages[i], step.Stage)
	}

	// Adjacent steps stay linked: the recipient of one handoff is the sender
	// of the next.
	for i := 1; i < len(steps); i++ {
		suite.Equal(steps[i-1].Recipient, steps[i].Sender)
	}
}

func (suite *TrackingServiceTestSuite) TestHistoryEnrichesNamesFromRegistry() {
	productID := suite.runFullLifecycle("QR-0001")

	steps, found, err := suite.tracking.GetTrackingHistory(productID)
	suite.NoError(err)
	suite.True(found)

	suite.Equal("Acme Raw Materials", steps[0].SenderName)
	suite.Equal("Raw Material Supplier", steps[0].SenderRole)
	suite.Equal("Alice", steps[len(steps)-1].RecipientName)
	suite.Equal("Consumer", steps[len(steps)-1].RecipientRole)
}

func (suite *TrackingServiceTestSuite) TestHistoryIsIdempotent() {
	productID := suite.runFullLifecycle("QR-0001")

	first, _, err := suite.tracking.GetTrackingHistory(productID)
	suite.NoError(err)

	second, _, err := suite.tracking.GetTrackingHistory(productID)
	suite.NoError(err)

	suite.Equal(first, second)
}

func (suite *TrackingServiceTestSuite) TestHistoryForUnknownProduct() {
	_, found, err := suite.tracking.GetTrackingHistory(4242)
	suite.NoError(err)
	suite.False(found)
}

func (suite *TrackingServiceTestSuite) TestHistoryOfFreshProductIsGenesisOnly() {
	product := createTestProduct(suite.T(), suite.products, "QR-0001")

	steps, found, err := suite.tracking.GetTrackingHistory(product.ID)
	suite.NoError(err)
	suite.True(found)
	suite.Len(steps, 1)
	suite.Equal(models.StageInit, steps[0].Stage)
}

func TestTrackingServiceSuite(t *testing.T) {
	suite.Run(t, new(TrackingServiceTestSuite))
}
