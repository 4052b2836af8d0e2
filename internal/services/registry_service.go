// internal/services/registry_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/utils"
)

// RegistryService is the owner-curated participant directory. The owner is a
// single address; only it may register participants or hand the registry to
// a new owner.
type RegistryService struct {
	db *gorm.DB
}

type RegisterParticipantRequest struct {
	Address  string      `json:"address" validate:"required,chain_address"`
	Name     string      `json:"name" validate:"required,min=2,max=255"`
	Location string      `json:"location" validate:"required,max=255"`
	Role     models.Role `json:"role" validate:"required"`
	Verified bool        `json:"verified"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" validate:"required"`
}

func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

// Owner returns the current administrative owner address.
func (s *RegistryService) Owner() (string, error) {
	var state models.RegistryState
	if err := s.db.First(&state, 1).Error; err != nil {
		return "", apperrors.Transport(err)
	}

	return state.OwnerAddress, nil
}

func (s *RegistryService) RegisterParticipant(caller string, req *RegisterParticipantRequest) (*models.Participant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("VALIDATION_ERROR", "invalid participant data: "+err.Error())
	}

	if !req.Role.Valid() {
		return nil, apperrors.Validation("INVALID_ROLE", "unknown role: "+string(req.Role))
	}

	participant := &models.Participant{
		Address:  strings.ToLower(req.Address),
		Name:     req.Name,
		Location: req.Location,
		Role:     req.Role,
		Verified: req.Verified,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		owner, err := ownerForUpdate(tx)
		if err != nil {
			return err
		}

		if !strings.EqualFold(caller, owner) {
			return apperrors.Authorization("only the registry owner can register participants")
		}

		var count int64
		if err := tx.Model(&models.Participant{}).
			Where("address = ?", participant.Address).
			Count(&count).Error; err != nil {
			return apperrors.Transport(err)
		}

		if count > 0 {
			return apperrors.Validation("DUPLICATE_PARTICIPANT", "address is already registered")
		}

		if err := tx.Create(participant).Error; err != nil {
			return apperrors.Transport(err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return participant, nil
}

// TransferOwnership hands the registry to newOwner. Irreversible: the old
// owner keeps no special rights afterwards.
func (s *RegistryService) TransferOwnership(caller, newOwner string) error {
	if !utils.IsValidAddress(newOwner) {
		return apperrors.Validation("INVALID_ADDRESS", "new owner must be a valid non-zero address")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		owner, err := ownerForUpdate(tx)
		if err != nil {
			return err
		}

		if !strings.EqualFold(caller, owner) {
			return apperrors.Authorization("only the current owner can transfer ownership")
		}

		if err := tx.Model(&models.RegistryState{}).
			Where("id = ?", 1).
			Update("owner_address", strings.ToLower(newOwner)).Error; err != nil {
			return apperrors.Transport(err)
		}

		return nil
	})
}

// GetParticipant is a pure read; an unknown address is an absent result,
// never an error.
func (s *RegistryService) GetParticipant(address string) (*models.Participant, bool, error) {
	var participant models.Participant
	err := s.db.Where("address = ?", strings.ToLower(address)).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Transport(err)
	}

	return &participant, true, nil
}

func (s *RegistryService) ListParticipants(params utils.PaginationParams) ([]models.Participant, int64, error) {
	query := s.db.Model(&models.Participant{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Transport(err)
	}

	allowedSortFields := []string{"created_at", "name", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var participants []models.Participant
	if err := query.Find(&participants).Error; err != nil {
		return nil, 0, apperrors.Transport(err)
	}

	return participants, total, nil
}

// ListParticipantAddresses returns every registered address, oldest first.
func (s *RegistryService) ListParticipantAddresses() ([]string, error) {
	var addresses []string
	if err := s.db.Model(&models.Participant{}).
		Order("created_at ASC").
		Pluck("address", &addresses).Error; err != nil {
		return nil, apperrors.Transport(err)
	}

	return addresses, nil
}

func ownerForUpdate(tx *gorm.DB) (string, error) {
	var state models.RegistryState
	if err := lockForUpdate(tx).First(&state, 1).Error; err != nil {
		return "", apperrors.Transport(err)
	}

	return state.OwnerAddress, nil
}
