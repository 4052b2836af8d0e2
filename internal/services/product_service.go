// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/cache"
	"github.com/chaintrace/backend/internal/metrics"
	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/utils"
)

type ProductService struct {
	db       *gorm.DB
	registry *RegistryService
	ledger   *LedgerService
	codes    *cache.ScanCodeCache
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"required"`
	ScanCode    string `json:"scan_code" validate:"required,scan_code"`
	ProductType string `json:"product_type" validate:"required,max=100"`
	BatchNumber string `json:"batch_number" validate:"required,max=100"`
	ExpiryDate  string `json:"expiry_date" validate:"required,max=64"`
	Location    string `json:"location" validate:"required,max=255"`
	Note        string `json:"note"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Custodian   *string
	Creator     *string
	Stage       *models.Stage
	ProductType string
}

func NewProductService(db *gorm.DB, registry *RegistryService, ledger *LedgerService, codes *cache.ScanCodeCache) *ProductService {
	return &ProductService{
		db:       db,
		registry: registry,
		ledger:   ledger,
		codes:    codes,
	}
}

// CreateProduct mints a product onto the ledger. Only a registered Supplier
// may create; the scan code must be globally unique. The creation also seals
// a genesis tracking event so the provenance trail starts at Init.
func (s *ProductService) CreateProduct(creator string, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("VALIDATION_ERROR", "invalid product data: "+err.Error())
	}

	participant, found, err := s.registry.GetParticipant(creator)
	if err != nil {
		return nil, err
	}
	if !found || participant.Role != models.RoleSupplier {
		return nil, apperrors.Authorization("only a registered Raw Material Supplier can create products")
	}

	product := &models.Product{
		Name:             req.Name,
		Description:      req.Description,
		ScanCode:         req.ScanCode,
		ProductType:      req.ProductType,
		BatchNumber:      req.BatchNumber,
		ExpiryDate:       req.ExpiryDate,
		Creator:          participant.Address,
		CurrentCustodian: participant.Address,
		Stage:            models.StageInit,
		IsAuthentic:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).
			Where("scan_code = ?", req.ScanCode).
			Count(&count).Error; err != nil {
			return apperrors.Transport(err)
		}

		if count > 0 {
			return apperrors.Validation("DUPLICATE_SCAN_CODE", "scan code is already bound to a product")
		}

		if err := tx.Create(product).Error; err != nil {
			return apperrors.Transport(err)
		}

		// Genesis event: the creator hands the product to itself at Init
		event := &models.TrackingEvent{
			ProductID:     product.ID,
			Sender:        participant.Address,
			Recipient:     participant.Address,
			SenderRole:    participant.Role,
			RecipientRole: participant.Role,
			Stage:         models.StageInit,
			Location:      req.Location,
			Note:          req.Note,
			Timestamp:     time.Now().UTC(),
		}

		return s.ledger.Append(tx, event)
	})

	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()

	return product, nil
}

// GetProduct is a pure read; an unknown id is an absent result.
func (s *ProductService) GetProduct(id uint64) (*models.Product, bool, error) {
	var product models.Product
	err := s.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Transport(err)
	}

	return &product, true, nil
}

// ResolveScanCode maps a scanned code to a product id. A miss is an explicit
// absent result so callers can tell an invalid code from a transport error.
// The binding is immutable, so the cache never needs invalidation.
func (s *ProductService) ResolveScanCode(ctx context.Context, code string) (uint64, bool, error) {
	if id, ok := s.codes.Get(ctx, code); ok {
		return id, true, nil
	}

	var product models.Product
	err := s.db.Select("id").Where("scan_code = ?", code).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.Transport(err)
	}

	s.codes.Set(ctx, code, product.ID)

	return product.ID, true, nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Custodian != nil {
		query = query.Where("current_custodian = ?", strings.ToLower(*params.Custodian))
	}

	if params.Creator != nil {
		query = query.Where("creator = ?", strings.ToLower(*params.Creator))
	}

	if params.Stage != nil {
		query = query.Where("stage = ?", *params.Stage)
	}

	if params.ProductType != "" {
		query = query.Where("product_type = ?", params.ProductType)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Transport(err)
	}

	allowedSortFields := []string{"created_at", "name", "stage", "product_type"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, apperrors.Transport(err)
	}

	return products, total, nil
}
