// internal/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaintrace/backend/internal/models"
	"github.com/chaintrace/backend/internal/services"
	"github.com/chaintrace/backend/internal/utils"
)

type ProductHandler struct {
	productService    *services.ProductService
	transitionService *services.TransitionService
}

func NewProductHandler(productService *services.ProductService, transitionService *services.TransitionService) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		transitionService: transitionService,
	}
}

// Create mints a new product. Supplier-only; the service checks the caller's
// registry role.
func (h *ProductHandler) Create(c *gin.Context) {
	caller, ok := utils.GetCallerAddressFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(caller, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		ProductType:      c.Query("product_type"),
	}

	if custodian := c.Query("custodian"); custodian != "" {
		params.Custodian = &custodian
	}
	if creator := c.Query("creator"); creator != "" {
		params.Creator = &creator
	}
	if stageStr := c.Query("stage"); stageStr != "" {
		stageVal, err := strconv.Atoi(stageStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid stage filter", nil)
			return
		}
		stage := models.Stage(stageVal)
		params.Stage = &stage
	}

	products, total, err := h.productService.SearchProducts(params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params.PaginationParams))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, found, err := h.productService.GetProduct(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

// ResolveScanCode maps a scanned code to a product id. An unknown code is a
// 404, not an error.
func (h *ProductHandler) ResolveScanCode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		utils.BadRequestResponse(c, "Scan code is required", nil)
		return
	}

	id, found, err := h.productService.ResolveScanCode(c.Request.Context(), code)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !found {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"product_id": id})
}

// Advance moves a product one custody stage forward. This is the only
// state-changing path after creation. Request shape is checked before any
// lookup, so a malformed body reports a validation failure even when the
// product is unknown or already sold.
func (h *ProductHandler) Advance(c *gin.Context) {
	caller, ok := utils.GetCallerAddressFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req services.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.transitionService.AdvanceStage(caller, id, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func parseProductID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return 0, false
	}
	return id, true
}
