// internal/services/transition_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/metrics"
	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/utils"
)

// TransitionService is the custody state machine. AdvanceStage is the only
// state-changing path for a product after creation; there is no separate
// approve-then-record protocol.
type TransitionService struct {
	db     *gorm.DB
	ledger *LedgerService
}

type AdvanceStageRequest struct {
	Recipient string `json:"recipient" validate:"required,chain_address"`
	Location  string `json:"location" validate:"required,max=255"`
	Note      string `json:"note"`
}

type TransitionResult struct {
	ProductID  uint64       `json:"product_id"`
	Stage      models.Stage `json:"stage"`
	StageLabel string       `json:"stage_label"`
	Custodian  string       `json:"custodian"`
	EventSeq   uint64       `json:"event_seq"`
}

func NewTransitionService(db *gorm.DB, ledger *LedgerService) *TransitionService {
	return &TransitionService{db: db, ledger: ledger}
}

// AdvanceStage hands the product from its current custodian to recipient and
// moves the stage one step forward. The product row is read under a row lock
// in the same transaction that commits the handoff, so a concurrent
// transition leaves exactly one winner; the loser observes the updated
// custodian and fails with an authorization error. No retry happens here;
// retry policy belongs to the caller.
func (s *TransitionService) AdvanceStage(caller string, productID uint64, req *AdvanceStageRequest) (*TransitionResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		metrics.TransitionFailures.WithLabelValues(apperrors.KindValidation.String()).Inc()
		return nil, apperrors.Validation("VALIDATION_ERROR", "invalid transition data: "+err.Error())
	}

	var result *TransitionResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := lockForUpdate(tx).First(&product, productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("product")
		}
		if err != nil {
			return apperrors.Transport(err)
		}

		if product.Stage.Terminal() {
			return apperrors.InvalidState("product is sold; no further transitions are permitted")
		}

		if !strings.EqualFold(caller, product.CurrentCustodian) {
			return apperrors.Authorization("only the current custodian can advance this product")
		}

		var sender models.Participant
		err = tx.Where("address = ?", strings.ToLower(caller)).First(&sender).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("sender participant")
		}
		if err != nil {
			return apperrors.Transport(err)
		}

		var recipient models.Participant
		err = tx.Where("address = ?", strings.ToLower(req.Recipient)).First(&recipient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("recipient participant")
		}
		if err != nil {
			return apperrors.Transport(err)
		}

		expected, ok := models.ExpectedRecipientRole(product.Stage)
		if !ok {
			return apperrors.InvalidState("no transition is defined from stage " + product.Stage.Label())
		}

		if recipient.Role != expected {
			return apperrors.Validation("ROLE_MISMATCH", fmt.Sprintf(
				"stage %s requires a %s recipient, got %s",
				product.Stage.Label(), expected.Label(), recipient.Role.Label(),
			))
		}

		nextStage := product.Stage.Next()

		event := &models.TrackingEvent{
			ProductID:     product.ID,
			Sender:        sender.Address,
			Recipient:     recipient.Address,
			SenderRole:    sender.Role,
			RecipientRole: recipient.Role,
			Stage:         nextStage,
			Location:      req.Location,
			Note:          req.Note,
			Timestamp:     time.Now().UTC(),
		}

		if err := s.ledger.Append(tx, event); err != nil {
			return err
		}

		if err := tx.Model(&product).Updates(map[string]interface{}{
			"stage":             nextStage,
			"current_custodian": recipient.Address,
		}).Error; err != nil {
			return apperrors.Transport(err)
		}

		result = &TransitionResult{
			ProductID:  product.ID,
			Stage:      nextStage,
			StageLabel: nextStage.Label(),
			Custodian:  recipient.Address,
			EventSeq:   event.Seq,
		}

		return nil
	})

	if err != nil {
		if kind, ok := apperrors.KindOf(err); ok {
			metrics.TransitionFailures.WithLabelValues(kind.String()).Inc()
		}
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(result.StageLabel).Inc()

	logrus.WithFields(logrus.Fields{
		"product_id": result.ProductID,
		"stage":      result.StageLabel,
		"custodian":  result.Custodian,
		"event_seq":  result.EventSeq,
	}).Info("Stage advanced")

	return result, nil
}
