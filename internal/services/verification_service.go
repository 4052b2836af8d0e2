// internal/services/verification_service.go
package services

import (
	"context"

	"github.com/chaintrace/backend/internal/metrics"
	"github.com/chaintrace/backend/internal/models"
)

// VerificationService answers "is this scanned unit the product the ledger
// says it is". It is a pure read-side consumer of product state.
type VerificationService struct {
	products *ProductService
	ledger   *LedgerService
}

type VerificationResult struct {
	ProductID uint64 `json:"product_id"`
	Authentic bool   `json:"authentic"`
	Reason    string `json:"reason,omitempty"`
}

func NewVerificationService(products *ProductService, ledger *LedgerService) *VerificationService {
	return &VerificationService{products: products, ledger: ledger}
}

// Verify checks that the presented scan code matches the product's recorded
// binding and that the ledger still considers the product authentic. The
// second return is false when the product id is unknown.
func (s *VerificationService) Verify(productID uint64, scanCode string) (*VerificationResult, bool, error) {
	product, found, err := s.products.GetProduct(productID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	result := &VerificationResult{ProductID: productID, Authentic: true}

	switch {
	case product.ScanCode != scanCode:
		result.Authentic = false
		result.Reason = "scan code does not match the product record"
	case !product.IsAuthentic:
		result.Authentic = false
		result.Reason = "product is flagged as not authentic"
	}

	if result.Authentic {
		metrics.VerificationsTotal.WithLabelValues("authentic").Inc()
	} else {
		metrics.VerificationsTotal.WithLabelValues("rejected").Inc()
	}

	return result, true, nil
}

// ResolveScanCode is the lookup-only half of verification: a miss is an
// absent result, never an error.
func (s *VerificationService) ResolveScanCode(ctx context.Context, code string) (uint64, bool, error) {
	return s.products.ResolveScanCode(ctx, code)
}

// LedgerEvents returns the product's raw events in emission order, hashes
// included. The second return is false when the product id is unknown.
func (s *VerificationService) LedgerEvents(productID uint64) ([]models.TrackingEvent, bool, error) {
	_, found, err := s.products.GetProduct(productID)
	if err != nil || !found {
		return nil, false, err
	}

	events, err := s.ledger.EventsForProduct(productID)
	if err != nil {
		return nil, false, err
	}

	return events, true, nil
}

// VerifyLedger recomputes the product's event hash chain. The second return
// is false when the product id is unknown.
func (s *VerificationService) VerifyLedger(productID uint64) (bool, bool, error) {
	_, found, err := s.products.GetProduct(productID)
	if err != nil || !found {
		return false, false, err
	}

	intact, err := s.ledger.VerifyChain(productID)
	if err != nil {
		return false, false, err
	}

	return intact, true, nil
}
