// internal/handlers/tracking.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// History returns the product's custody trail in causal order, enriched with
// current registry names.
func (h *TrackingHandler) History(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	steps, found, err := h.trackingService.GetTrackingHistory(id)
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
		"steps":      steps,
	})
}
