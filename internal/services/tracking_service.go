// internal/services/tracking_service.go
package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/models"
)

// TrackingService reconstructs the provenance trail of a product from its
// tracking events. It is a pure read-side consumer: recomputing from the
// same event set always yields the same output.
type TrackingService struct {
	db       *gorm.DB
	registry *RegistryService
	ledger   *LedgerService
}

// TrackingStep is one enriched custody handoff. Names and role labels come
// from the registry as it is at query time, not as it was when the event was
// recorded; that trade-off is inherited from the source system.
type TrackingStep struct {
	Step          int          `json:"step"`
	Seq           uint64       `json:"seq"`
	Stage         models.Stage `json:"stage"`
	StageLabel    string       `json:"stage_label"`
	Sender        string       `json:"sender"`
	SenderName    string       `json:"sender_name"`
	SenderRole    string       `json:"sender_role"`
	Recipient     string       `json:"recipient"`
	RecipientName string       `json:"recipient_name"`
	RecipientRole string       `json:"recipient_role"`
	Location      string       `json:"location"`
	Note          string       `json:"note"`
	Timestamp     time.Time    `json:"timestamp"`
}

func NewTrackingService(db *gorm.DB, registry *RegistryService, ledger *LedgerService) *TrackingService {
	return &TrackingService{
		db:       db,
		registry: registry,
		ledger:   ledger,
	}
}

// GetTrackingHistory replays the product's events in causal order. The
// second return is false when the product does not exist.
func (s *TrackingService) GetTrackingHistory(productID uint64) ([]TrackingStep, bool, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, nil
	}

	events, err := s.ledger.EventsForProduct(productID)
	if err != nil {
		return nil, false, err
	}

	// Emission order and timestamp order can differ under clock skew;
	// (timestamp, seq) is the canonical ordering key.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Seq < events[j].Seq
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	names := make(map[string]string)

	steps := make([]TrackingStep, 0, len(events))
	for i, ev := range events {
		steps = append(steps, TrackingStep{
			Step:          i + 1,
			Seq:           ev.Seq,
			Stage:         ev.Stage,
			StageLabel:    ev.Stage.Label(),
			Sender:        ev.Sender,
			SenderName:    s.resolveName(names, ev.Sender),
			SenderRole:    ev.SenderRole.Label(),
			Recipient:     ev.Recipient,
			RecipientName: s.resolveName(names, ev.Recipient),
			RecipientRole: ev.RecipientRole.Label(),
			Location:      ev.Location,
			Note:          ev.Note,
			Timestamp:     ev.Timestamp,
		})
	}

	return steps, true, nil
}

// resolveName looks a participant name up in the current registry, falling
// back to the bare address for participants no longer resolvable.
func (s *TrackingService) resolveName(memo map[string]string, address string) string {
	if name, ok := memo[address]; ok {
		return name
	}

	name := address
	if participant, found, err := s.registry.GetParticipant(address); err == nil && found {
		name = participant.Name
	}

	memo[address] = name
	return name
}
