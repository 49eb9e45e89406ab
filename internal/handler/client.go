package handler

import (
	"fmt"
	"net/http"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/gin-gonic/gin"
)

const clientNotFound = "Cliente no encontrado"

// ClientHandler expõe o CRUD de clientes
type ClientHandler struct {
	repo *repository.ClientRepository
}

// NewClientHandler cria o handler de clientes
func NewClientHandler(repo *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

// List retorna os clientes com o agregado de tarefas, ordenados por empresa
// @Summary      Lista clientes
// @Tags         clientes
// @Produce      json
// @Success      200 {array} model.ClientSummary
// @Router       /api/clientes [get]
func (h *ClientHandler) List(c *gin.Context) {
	summaries, err := h.repo.ListSummaries(c.Request.Context())
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Get retorna um cliente
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Create cria um cliente
// @Summary      Cria cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        request body model.ClientRequest true "Cliente"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req model.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize()

	ctx := c.Request.Context()
	id, err := h.repo.Create(ctx, req.ToClient())
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionClientCreate,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"empresa": req.Empresa},
	})

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: "Cliente creado exitosamente",
		ID:      id,
	})
}

// CreateBulk importa vários clientes numa única transação
func (h *ClientHandler) CreateBulk(c *gin.Context) {
	var req model.BulkClientRequest
	if !bindJSON(c, &req) {
		return
	}

	clients := make([]model.Client, 0, len(req.Clientes))
	for i := range req.Clientes {
		req.Clientes[i].Normalize()
		clients = append(clients, req.Clientes[i].ToClient())
	}

	ctx := c.Request.Context()
	n, err := h.repo.CreateMany(ctx, clients)
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:   logger.AuditActionClientImport,
		Resource: "clientes",
		ClientIP: c.ClientIP(),
		Success:  true,
		Details:  map[string]interface{}{"count": n},
	})

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("%d clientes importados exitosamente", n),
		Count:   n,
	})
}

// Update substitui os campos do cliente
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize()

	ctx := c.Request.Context()
	if err := h.repo.Update(ctx, id, req.ToClient()); err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionClientUpdate,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Cliente actualizado exitosamente",
		ID:      id,
	})
}

// Delete remove o cliente. As tarefas do cliente permanecem na base.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.repo.Delete(ctx, id); err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionClientDelete,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Cliente eliminado exitosamente",
		ID:      id,
	})
}
