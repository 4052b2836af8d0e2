// internal/handlers/verification.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

type VerificationHandler struct {
	verificationService *services.VerificationService
}

func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Verify answers whether the presented scan code belongs to the product and
// the product is still considered authentic. A failed check is a negative
// verdict with a 200, not an error.
func (h *VerificationHandler) Verify(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		utils.BadRequestResponse(c, "Query parameter 'code' is required", nil)
		return
	}

	result, found, err := h.verificationService.Verify(id, code)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, result)
}

// LedgerEvents returns the product's raw tracking events in emission order,
// hashes included.
func (h *VerificationHandler) LedgerEvents(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	events, found, err := h.verificationService.LedgerEvents(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": id,
		"events":     events,
	})
}

// VerifyLedger recomputes the product's hash chain and reports whether it
// still links up.
func (h *VerificationHandler) VerifyLedger(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	intact, found, err := h.verificationService.VerifyLedger(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": id,
		"intact":     intact,
	})
}
