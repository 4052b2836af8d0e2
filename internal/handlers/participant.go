// internal/handlers/participant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

type ParticipantHandler struct {
	registryService *services.RegistryService
}

func NewParticipantHandler(registryService *services.RegistryService) *ParticipantHandler {
	return &ParticipantHandler{registryService: registryService}
}

// Register adds a participant to the registry. Owner-only; the service
// enforces it inside the transaction.
func (h *ParticipantHandler) Register(c *gin.Context) {
	caller, ok := utils.GetCallerAddressFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	participant, err := h.registryService.RegisterParticipant(caller, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, participant)
}

func (h *ParticipantHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	participants, total, err := h.registryService.ListParticipants(params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(participants, total, params))
}

func (h *ParticipantHandler) Get(c *gin.Context) {
	address := c.Param("address")
	if !utils.IsValidAddress(address) {
		utils.BadRequestResponse(c, "Invalid participant address", nil)
		return
	}

	participant, found, err := h.registryService.GetParticipant(address)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Participant")
		return
	}

	utils.SuccessResponse(c, participant)
}

// ListAddresses returns every registered address, oldest first. This mirrors
// the bare enumeration view some clients page through themselves.
func (h *ParticipantHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.registryService.ListParticipantAddresses()
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"addresses": addresses})
}

func (h *ParticipantHandler) GetOwner(c *gin.Context) {
	owner, err := h.registryService.Owner()
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"owner": owner})
}

// TransferOwnership hands the registry to a new owner address. Irreversible.
func (h *ParticipantHandler) TransferOwnership(c *gin.Context) {
	caller, ok := utils.GetCallerAddressFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if err := h.registryService.TransferOwnership(caller, req.NewOwner); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"owner": req.NewOwner})
}
