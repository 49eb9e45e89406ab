package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cleberrangel/pendientes-api/internal/logger"
	"github.com/cleberrangel/pendientes-api/internal/model"
	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("ID inválido")

// parseID lê o parâmetro :id da rota
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   errInvalidID.Error(),
			Details: c.Param("id"),
		})
		return 0, false
	}
	return id, true
}

// bindJSON decodifica o corpo e responde 400 em caso de payload inválido
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "payload inválido",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// handleError converte erros de domínio em status HTTP.
// notFound é a mensagem exibida quando o registro não existe.
func handleError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Success: false, Error: notFound})
	case errors.Is(err, model.ErrNoEmail):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Error: "No tiene correo configurado"})
	case errors.Is(err, model.ErrNoPendingTasks),
		errors.Is(err, model.ErrNoRecipients),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrEmptyDescription),
		errors.Is(err, model.ErrWeekend):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Error: err.Error()})
	case errors.Is(err, model.ErrMailFailed):
		logger.FromGin(c).Error().Err(err).Msg("Falha no envio de e-mail")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Success: false, Error: "Error al enviar el correo"})
	default:
		logger.FromGin(c).Error().Err(err).Str("path", c.FullPath()).Msg("Erro interno")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "erro interno",
			Details: err.Error(),
		})
	}
}
