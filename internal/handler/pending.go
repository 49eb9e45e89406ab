package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/gin-gonic/gin"
)

const pendingNotFound = "Pendiente no encontrado"

// PendingHandler expõe o CRUD de pendientes
type PendingHandler struct {
	repo *repository.PendingRepository
	now  func() time.Time
}

// NewPendingHandler cria o handler de pendientes
func NewPendingHandler(repo *repository.PendingRepository) *PendingHandler {
	return &PendingHandler{repo: repo, now: time.Now}
}

// List lista os pendientes ordenados por fecha_limite
// @Summary      Lista pendientes
// @Tags         pendientes
// @Produce      json
// @Success      200 {array} model.PendingItem
// @Router       /api/pendientes [get]
func (h *PendingHandler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get retorna um pendiente
// @Summary      Busca pendiente
// @Tags         pendientes
// @Produce      json
// @Param        id path int true "ID do pendiente"
// @Success      200 {object} model.PendingItem
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/pendientes/{id} [get]
func (h *PendingHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create cria um pendiente. O estado inicial é sempre Pendiente.
// @Summary      Cria pendiente
// @Tags         pendientes
// @Accept       json
// @Produce      json
// @Param        request body model.PendingRequest true "Pendiente"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/pendientes [post]
func (h *PendingHandler) Create(c *gin.Context) {
	var req model.PendingRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize(h.now())
	req.Estado = model.EstadoPendiente

	ctx := c.Request.Context()
	id, err := h.repo.Create(ctx, req.ToItem())
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionPendingCreate,
		Resource:   "pendiente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"actividad": req.Actividad, "empresa": req.Empresa},
	})

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: "Pendiente creado exitosamente",
		ID:      id,
	})
}

// Update substitui todos os campos editáveis do pendiente
// @Summary      Atualiza pendiente
// @Tags         pendientes
// @Accept       json
// @Produce      json
// @Param        id path int true "ID do pendiente"
// @Param        request body model.PendingRequest true "Pendiente"
// @Success      200 {object} model.MessageResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/pendientes/{id} [put]
func (h *PendingHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.PendingRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize(h.now())

	ctx := c.Request.Context()
	if err := h.repo.Update(ctx, id, req.ToItem()); err != nil {
		handleError(c, err, pendingNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionPendingUpdate,
		Resource:   "pendiente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"estado": req.Estado},
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Pendiente actualizado exitosamente",
		ID:      id,
	})
}

// Delete remove o pendiente
// @Summary      Remove pendiente
// @Tags         pendientes
// @Param        id path int true "ID do pendiente"
// @Success      200 {object} model.MessageResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/pendientes/{id} [delete]
func (h *PendingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.repo.Delete(ctx, id); err != nil {
		handleError(c, err, pendingNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionPendingDelete,
		Resource:   "pendiente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Pendiente eliminado exitosamente",
		ID:      id,
	})
}
