package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain"
	"almacen/internal/domain/movement"
	"almacen/internal/infrastructure/http/v1/dto"
)

// MovementHandler handles HTTP requests for inventory movements.
type MovementHandler struct {
	*BaseHandler
	service *movement.Service
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(base *BaseHandler, service *movement.Service) *MovementHandler {
	return &MovementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /movements - create a pending movement from a draft.
func (h *MovementHandler) Create(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.CreateFromDraft(c.Request.Context(), req.ToDraft())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovement(m))
}

// CreateAdjustment handles POST /movements/adjustments - split a confirmed
// reception across destination dependencies. All legs are created
// atomically or none are; each leg is confirmed separately.
func (h *MovementHandler) CreateAdjustment(c *gin.Context) {
	var req dto.CreateAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	legs, err := h.service.CreateAdjustment(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": dto.FromMovements(legs)})
}

// Confirm handles PUT /movements/:id/confirm - apply a pending movement
// to stock.
func (h *MovementHandler) Confirm(c *gin.Context) {
	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	m, err := h.service.Confirm(c.Request.Context(), movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovement(m))
}

// Delete handles DELETE /movements/:id - physical delete, legal only
// while the movement is pending.
func (h *MovementHandler) Delete(c *gin.Context) {
	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), movementID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Cancel handles PUT /movements/:id/cancel - an alias for Delete kept
// for clients that treat cancellation as a state change.
func (h *MovementHandler) Cancel(c *gin.Context) {
	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), movementID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Get handles GET /movements/:id
func (h *MovementHandler) Get(c *gin.Context) {
	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovement(m))
}

// GetRemaining handles GET /movements/:id/remaining - how much of a
// reception is still available for adjustment.
func (h *MovementHandler) GetRemaining(c *gin.Context) {
	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	remaining, err := h.service.Remaining(c.Request.Context(), movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemainingResponse{
		SourceMovementID: movementID.String(),
		Remaining:        remaining,
	})
}

// List handles GET /movements
func (h *MovementHandler) List(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.writeList(c, result)
}

// ListPending handles GET /movements/pending
func (h *MovementHandler) ListPending(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.writeList(c, result)
}

// ListReceptionsInStock handles GET /movements/receptions-in-stock -
// confirmed receptions that still have unadjusted quantity.
func (h *MovementHandler) ListReceptionsInStock(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.ListReceptionsInStock(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.writeList(c, result)
}

func (h *MovementHandler) parseListFilter(c *gin.Context) (movement.ListFilter, bool) {
	filter := movement.ListFilter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		t := movement.Type(typeStr)
		if !movement.IsValid(t) {
			h.Error(c, apperror.NewValidation("unknown movement type").
				WithDetail("value", typeStr))
			return filter, false
		}
		filter.Type = &t
	}

	if statusStr := c.Query("status"); statusStr != "" {
		s := movement.Status(statusStr)
		filter.Status = &s
	}

	if depStr := c.Query("dependencyId"); depStr != "" {
		parsed, err := id.Parse(depStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dependencyId format"))
			return filter, false
		}
		filter.DependencyID = &parsed
	}

	return filter, true
}

func (h *MovementHandler) writeList(c *gin.Context, result domain.ListResult[*movement.Movement]) {
	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dto.FromMovements(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers movement routes.
func (h *MovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.POST("/adjustments", h.CreateAdjustment)
	rg.GET("", h.List)
	rg.GET("/pending", h.ListPending)
	rg.GET("/receptions-in-stock", h.ListReceptionsInStock)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/remaining", h.GetRemaining)
	rg.PUT("/:id/confirm", h.Confirm)
	rg.PUT("/:id/cancel", h.Cancel)
	rg.DELETE("/:id", h.Delete)
}
