// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

type AuthHandler struct {
	authService     *services.AuthService
	registryService *services.RegistryService
}

func NewAuthHandler(authService *services.AuthService, registryService *services.RegistryService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		registryService: registryService,
	}
}

// CreateSession issues a session token for a chain address. The wallet layer
// in front of the API vouches for the address; this endpoint only checks that
// the address is known to the registry.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req services.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	session, err := h.authService.CreateSession(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, session)
}

// Me returns the caller's participant record, or just the address for the
// registry owner when it is not itself registered.
func (h *AuthHandler) Me(c *gin.Context) {
	address, ok := utils.GetCallerAddressFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	participant, found, err := h.registryService.GetParticipant(address)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	isOwner, _ := c.Get("caller_is_owner")

	resp := gin.H{
		"address":  address,
		"is_owner": isOwner == true,
	}
	if found {
		resp["participant"] = participant
	}

	utils.SuccessResponse(c, resp)
}
