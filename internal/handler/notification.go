package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/cleberrangel/pendientes-api/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	completedPage = "completed.html"
	errorPage     = "error.html"
)

// NotificationHandler expõe os lembretes manuais e a conclusão via link do e-mail
type NotificationHandler struct {
	notifications *service.NotificationService
	clients       *service.ClientService
	now           func() time.Time
}

// NewNotificationHandler cria o handler de notificações
func NewNotificationHandler(notifications *service.NotificationService, clients *service.ClientService) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		clients:       clients,
		now:           time.Now,
	}
}

// NotifyOne envia o lembrete de um pendiente, independente do dia e do prazo
// @Summary      Lembrete manual
// @Tags         notificaciones
// @Produce      json
// @Param        id path int true "ID do pendiente"
// @Success      200 {object} model.MessageResponse
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/notify/{id} [post]
func (h *NotificationHandler) NotifyOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.notifications.NotifyOne(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Correo enviado a %s", item.EmailNotificacion),
		ID:      id,
	})
}

// CheckAll executa a verificação de prazos sem o bloqueio de fim de semana
// @Summary      Verificação manual de prazos
// @Tags         notificaciones
// @Produce      json
// @Success      200 {object} model.CheckResult
// @Router       /api/notifications/check-all [post]
func (h *NotificationHandler) CheckAll(c *gin.Context) {
	result, err := h.notifications.RunManual(c.Request.Context(), h.now())
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompleteAllTasks é o destino do link enviado no lembrete. Responde HTML.
func (h *NotificationHandler) CompleteAllTasks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.clients.CompleteAllTasks(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "No fue posible completar las tareas"
		if errors.Is(err, model.ErrNotFound) {
			status = http.StatusNotFound
			msg = pendingNotFound
		}
		c.HTML(status, errorPage, gin.H{"Message": msg})
		return
	}

	c.HTML(http.StatusOK, completedPage, gin.H{
		"Actividad": item.Actividad,
		"Empresa":   item.Empresa,
	})
}

// pageTemplates são as páginas exibidas após clicar no link do e-mail
var pageTemplates = template.Must(template.New(completedPage).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Tareas Completadas</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
.container { background: white; border-radius: 16px; padding: 40px; max-width: 500px; text-align: center; box-shadow: 0 10px 40px rgba(0,0,0,0.2); }
.icon { font-size: 64px; }
</style>
</head>
<body>
<div class="container">
<div class="icon">✅</div>
<h1>¡Tareas completadas!</h1>
<p>El pendiente <strong>{{.Actividad}}</strong> fue marcado como Finalizado.</p>
<p>Se completaron todas las tareas de <strong>{{.Empresa}}</strong>.</p>
</div>
</body>
</html>`))

func init() {
	template.Must(pageTemplates.New(errorPage).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>Error</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f5576c; margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
.container { background: white; border-radius: 16px; padding: 40px; max-width: 500px; text-align: center; }
</style>
</head>
<body>
<div class="container">
<h1>❌ Error</h1>
<p>{{.Message}}</p>
</div>
</body>
</html>`))
}
