// internal/services/ledger_service.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/models"
)

// LedgerService owns the append-only tracking event log. Events are written
// only inside the transaction that commits the state change they describe,
// so the log and the product state can never diverge. Each event is chained
// to its predecessor for the same product with a sha256 link.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// Append seals ev into the per-product hash chain and writes it through tx.
// The caller supplies every field except PrevHash and Hash.
func (s *LedgerService) Append(tx *gorm.DB, ev *models.TrackingEvent) error {
	var last models.TrackingEvent
	err := tx.Where("product_id = ?", ev.ProductID).
		Order("seq DESC").
		First(&last).Error
	if err == nil {
		ev.PrevHash = last.Hash
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Transport(err)
	}

	ev.Hash = s.hashEvent(ev)

	if err := tx.Create(ev).Error; err != nil {
		return apperrors.Transport(err)
	}

	return nil
}

// EventsForProduct returns the product's events in emission order, from
// genesis to latest. Emission order and timestamp order are not guaranteed
// identical; reconstruction re-sorts.
func (s *LedgerService) EventsForProduct(productID uint64) ([]models.TrackingEvent, error) {
	var events []models.TrackingEvent
	if err := s.db.Where("product_id = ?", productID).
		Order("seq ASC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Transport(err)
	}

	return events, nil
}

// VerifyChain recomputes every hash link for the product's event chain.
func (s *LedgerService) VerifyChain(productID uint64) (bool, error) {
	events, err := s.EventsForProduct(productID)
	if err != nil {
		return false, err
	}

	prevHash := ""
	for i := range events {
		ev := events[i]
		if ev.PrevHash != prevHash {
			return false, nil
		}
		if s.hashEvent(&ev) != ev.Hash {
			return false, nil
		}
		prevHash = ev.Hash
	}

	return true, nil
}

func (s *LedgerService) hashEvent(ev *models.TrackingEvent) string {
	payload := fmt.Sprintf("%s|%d|%s|%s|%s|%s|%d|%s|%s|%d",
		ev.PrevHash,
		ev.ProductID,
		ev.Sender,
		ev.Recipient,
		ev.SenderRole,
		ev.RecipientRole,
		ev.Stage,
		ev.Location,
		ev.Note,
		ev.Timestamp.Unix(),
	)

	hash := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(hash[:])
}
