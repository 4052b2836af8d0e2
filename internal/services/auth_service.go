// internal/services/auth_service.go
package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/chaintrace/backend/internal/apperrors"
	"github.com/chaintrace/backend/internal/config"
	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/utils"
)

// AuthService issues API session tokens for chain addresses. It trusts the
// wallet layer in front of the API to have authenticated the address; key
// custody and transaction signing never enter this service.
type AuthService struct {
	db       *gorm.DB
	registry *RegistryService
	config   *config.Config
}

type SessionRequest struct {
	Address string `json:"address" validate:"required,chain_address"`
}

type Session struct {
	Token       string              `json:"token"`
	Address     string              `json:"address"`
	IsOwner     bool                `json:"is_owner"`
	Participant *models.Participant `json:"participant,omitempty"`
}

func NewAuthService(db *gorm.DB, registry *RegistryService, cfg *config.Config) *AuthService {
	return &AuthService{db: db, registry: registry, config: cfg}
}

// CreateSession issues a token for a registered participant or the registry
// owner. Unknown addresses get nothing; registration comes first.
func (s *AuthService) CreateSession(req *SessionRequest) (*Session, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("VALIDATION_ERROR", "invalid session data: "+err.Error())
	}

	address := strings.ToLower(req.Address)

	owner, err := s.registry.Owner()
	if err != nil {
		return nil, err
	}
	isOwner := strings.EqualFold(address, owner)

	participant, found, err := s.registry.GetParticipant(address)
	if err != nil {
		return nil, err
	}

	if !found && !isOwner {
		return nil, apperrors.Authorization("address is neither a registered participant nor the registry owner")
	}

	role := ""
	if found {
		role = string(participant.Role)
	}

	token, err := utils.GenerateJWT(address, role, isOwner, s.config.JWT.SessionTTL)
	if err != nil {
		return nil, apperrors.Transport(err)
	}

	session := &Session{
		Token:   token,
		Address: address,
		IsOwner: isOwner,
	}
	if found {
		session.Participant = participant
	}

	return session, nil
}
