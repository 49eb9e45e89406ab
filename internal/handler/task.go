package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/cleberrangel/pendientes-api/internal/service"
	"github.com/gin-gonic/gin"
)

const taskNotFound = "Tarea no encontrada"

// TaskHandler expõe o checklist de tarefas dos clientes
type TaskHandler struct {
	tasks   *repository.TaskRepository
	clients *repository.ClientRepository
	service *service.ClientService
}

// NewTaskHandler cria o handler de tarefas
func NewTaskHandler(tasks *repository.TaskRepository, clients *repository.ClientRepository, svc *service.ClientService) *TaskHandler {
	return &TaskHandler{tasks: tasks, clients: clients, service: svc}
}

// List retorna as tarefas do cliente, mais recentes primeiro
// @Summary      Lista tarefas do cliente
// @Tags         tasks
// @Produce      json
// @Param        id path int true "ID do cliente"
// @Success      200 {array} model.ClientTask
// @Router       /api/clients/{id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	clientID, ok := parseID(c)
	if !ok {
		return
	}
	tasks, err := h.tasks.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create adiciona uma tarefa ao cliente
func (h *TaskHandler) Create(c *gin.Context) {
	clientID, ok := parseID(c)
	if !ok {
		return
	}
	var req model.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.clients.Get(ctx, clientID); err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	if err := h.tasks.Create(ctx, clientID, req.Description); err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionTaskCreate,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(clientID),
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: "Tarea agregada exitosamente",
	})
}

// CreateBulk adiciona várias tarefas ao cliente
func (h *TaskHandler) CreateBulk(c *gin.Context) {
	clientID, ok := parseID(c)
	if !ok {
		return
	}
	var req model.BulkTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize()
	if len(req.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Error: "No se enviaron tareas"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.clients.Get(ctx, clientID); err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	n, err := h.tasks.CreateMany(ctx, clientID, req.Tasks)
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionTaskCreate,
		Resource:   "cliente",
		ResourceID: fmt.Sprint(clientID),
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"count": n},
	})

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("%d tareas agregadas exitosamente", n),
		Count:   n,
	})
}

// SetCompleted marca ou desmarca a tarefa
func (h *TaskHandler) SetCompleted(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.TaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.tasks.SetCompleted(ctx, id, bool(req.Completed)); err != nil {
		handleError(c, err, taskNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionTaskUpdate,
		Resource:   "task",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
		Details:    map[string]interface{}{"completed": bool(req.Completed)},
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Tarea actualizada exitosamente",
		ID:      id,
	})
}

// Delete remove a tarefa
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.tasks.Delete(ctx, id); err != nil {
		handleError(c, err, taskNotFound)
		return
	}

	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionTaskDelete,
		Resource:   "task",
		ResourceID: fmt.Sprint(id),
		ClientIP:   c.ClientIP(),
		Success:    true,
	})

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Tarea eliminada exitosamente",
		ID:      id,
	})
}

// AddGlobal adiciona a mesma tarefa a todos os clientes não excluídos
// @Summary      Tarefa global
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body model.GlobalTaskRequest true "Descrição e clientes excluídos"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} model.ErrorResponse
// @Router       /api/tasks/global [post]
func (h *TaskHandler) AddGlobal(c *gin.Context) {
	var req model.GlobalTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.service.AddGlobalTask(c.Request.Context(), req)
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Tarea agregada a %d clientes", n),
		Count:   n,
	})
}

// CreatePending converte as tarefas abertas do cliente em pendientes
// @Summary      Converte tarefas em pendientes
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path int true "ID do cliente"
// @Param        request body model.CreatePendingFromTasksRequest true "E-mail, prazo e aviso"
// @Success      201 {object} model.MessageResponse
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Router       /api/clients/{id}/create-pending-tasks [post]
func (h *TaskHandler) CreatePending(c *gin.Context) {
	clientID, ok := parseID(c)
	if !ok {
		return
	}
	var req model.CreatePendingFromTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	n, err := h.service.CreatePendingFromTasks(c.Request.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, model.ErrNoEmail) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Error: "Debe especificar un correo electrónico"})
			return
		}
		handleError(c, err, clientNotFound)
		return
	}

	c.JSON(http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Se crearon %d pendientes", n),
		Count:   n,
	})
}

// SendPending envia por e-mail o resumo das tarefas abertas do cliente
func (h *TaskHandler) SendPending(c *gin.Context) {
	clientID, ok := parseID(c)
	if !ok {
		return
	}
	var req model.SendTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.SendOpenTasks(c.Request.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, model.ErrMailFailed) {
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{
				Success: false,
				Error:   result.Message(),
			})
			return
		}
		handleError(c, err, clientNotFound)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: result.Message(),
		Count:   len(result.Sent),
	})
}
