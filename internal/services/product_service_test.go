// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	registry *RegistryService
	products *ProductService
	ledger   *LedgerService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	db, registry, products, _, _, _ := newTestServices(suite.T())
	suite.db = db
	suite.registry = registry
	suite.products = products
	suite.ledger = NewLedgerService(db)

	seedParticipants(suite.T(), registry)
}

func (suite *ProductServiceTestSuite) TestCreateProduct() {
	product := createTestProduct(suite.T(), suite.products, "QR-0001")

	suite.NotZero(product.ID)
	suite.Equal(models.StageInit, product.Stage)
	suite.Equal(testSupplier, product.Creator)
	suite.Equal(testSupplier, product.CurrentCustodian)
	suite.True(product.IsAuthentic)
}

func (suite *ProductServiceTestSuite) TestCreateWritesGenesisEvent() {
	product := createTestProduct(suite.T(), suite.products, "QR-0001")

	events, err := suite.ledger.EventsForProduct(product.ID)
	suite.NoError(err)
	suite.Len(events, 1)

	genesis := events[0]
	suite.Equal(models.StageInit, genesis.Stage)
	suite.Equal(testSupplier, genesis.Sender)
	suite.Equal(testSupplier, genesis.Recipient)
	suite.Empty(genesis.PrevHash)
	suite.NotEmpty(genesis.Hash)
}

func (suite *ProductServiceTestSuite) TestCreateRejectsNonSupplier() {
	for _, caller := range []string{testManufacturer, testRetailer, testConsumer, testOutsider} {
		_, err := suite.products.CreateProduct(caller, &CreateProductRequest{
			Name:        "Widget",
			Description: "A widget",
			ScanCode:    "QR-0002",
			ProductType: "widget",
			BatchNumber: "B-1",
			ExpiryDate:  "2028-01-01",
			Location:    "Springfield",
		})
		suite.Error(err)
		suite.True(apperrors.IsKind(err, apperrors.KindAuthorization), "caller %s", caller)
	}
}

func (suite *ProductServiceTestSuite) TestCreateRejectsDuplicateScanCode() {
	createTestProduct(suite.T(), suite.products, "QR-0001")

	_, err := suite.products.CreateProduct(testSupplier, &CreateProductRequest{
		Name:        "Second product",
		Description: "Reuses the scan code",
		ScanCode:    "QR-0001",
		ProductType: "pharmaceutical",
		BatchNumber: "B-2",
		ExpiryDate:  "2028-01-01",
		Location:    "Springfield",
	})
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *ProductServiceTestSuite) TestCreateRejectsInvalidScanCode() {
	_, err := suite.products.CreateProduct(testSupplier, &CreateProductRequest{
		Name:        "Widget",
		Description: "A widget",
		ScanCode:    "no spaces allowed",
		ProductType: "widget",
		BatchNumber: "B-1",
		ExpiryDate:  "2028-01-01",
		Location:    "Springfield",
	})
	suite.Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *ProductServiceTestSuite) TestGetProductMissIsNotAnError() {
	_, found, err := suite.products.GetProduct(12345)
	suite.NoError(err)
	suite.False(found)
}

func (suite *ProductServiceTestSuite) TestResolveScanCode() {
	product := createTestProduct(suite.T(), suite.products, "QR-0001")

	id, found, err := suite.products.ResolveScanCode(context.Background(), "QR-0001")
	suite.NoError(err)
	suite.True(found)
	suite.Equal(product.ID, id)

	_, found, err = suite.products.ResolveScanCode(context.Background(), "QR-MISSING")
	suite.NoError(err)
	suite.False(found)
}

func (suite *ProductServiceTestSuite) TestSearchProducts() {
	createTestProduct(suite.T(), suite.products, "QR-0001")
	createTestProduct(suite.T(), suite.products, "QR-0002")

	custodian := testSupplier
	results, total, err := suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: paginationDefaults(),
		Custodian:        &custodian,
	})
	suite.NoError(err)
	suite.EqualValues(2, total)
	suite.Len(results, 2)

	stage := models.StageSold
	_, total, err = suite.products.SearchProducts(ProductSearchParams{
		PaginationParams: paginationDefaults(),
		Stage:            &stage,
	})
	suite.NoError(err)
	suite.EqualValues(0, total)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
