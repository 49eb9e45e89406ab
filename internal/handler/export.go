package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"github.com/cleberrangel/pendientes-api/internal/repository"
	"github.com/cleberrangel/pendientes-api/internal/service"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler gera as planilhas de pendientes e clientes
type ExportHandler struct {
	pending *repository.PendingRepository
	clients *repository.ClientRepository
	excel   *service.ExcelGenerator
	now     func() time.Time
}

// NewExportHandler cria o handler de exportação
func NewExportHandler(pending *repository.PendingRepository, clients *repository.ClientRepository, excel *service.ExcelGenerator) *ExportHandler {
	return &ExportHandler{pending: pending, clients: clients, excel: excel, now: time.Now}
}

// Pending exporta todos os pendientes em xlsx
// @Summary      Exporta pendientes
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /api/pendientes/export [get]
func (h *ExportHandler) Pending(c *gin.Context) {
	items, err := h.pending.List(c.Request.Context())
	if err != nil {
		handleError(c, err, pendingNotFound)
		return
	}
	buf, err := h.excel.PendingItems(items)
	if err != nil {
		handleError(c, fmt.Errorf("erro ao gerar planilha: %w", err), pendingNotFound)
		return
	}
	h.send(c, "pendientes", len(items), buf)
}

// Clients exporta os clientes com o agregado de tarefas em xlsx
// @Summary      Exporta clientes
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Router       /api/clientes/export [get]
func (h *ExportHandler) Clients(c *gin.Context) {
	summaries, err := h.clients.ListSummaries(c.Request.Context())
	if err != nil {
		handleError(c, err, clientNotFound)
		return
	}
	buf, err := h.excel.Clients(summaries)
	if err != nil {
		handleError(c, fmt.Errorf("erro ao gerar planilha: %w", err), clientNotFound)
		return
	}
	h.send(c, "clientes", len(summaries), buf)
}

func (h *ExportHandler) send(c *gin.Context, kind string, rows int, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s_%s.xlsx", kind, h.now().Format("20060102_150405"))

	metrics.ReportsGenerated.WithLabelValues(kind).Inc()
	logger.Audit(c.Request.Context(), logger.AuditEvent{
		Action:   logger.AuditActionReportDownload,
		Resource: kind,
		ClientIP: c.ClientIP(),
		Success:  true,
		Details:  map[string]interface{}{"rows": rows, "bytes": buf.Len()},
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("X-Total-Rows", fmt.Sprintf("%d", rows))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
