package model

import (
	"strings"
	"time"
)

const (
	// DateLayout é o formato das datas persistidas
	DateLayout = "2006-01-02"

	EstadoPendiente  = "Pendiente"
	EstadoFinalizado = "Finalizado"

	// DefaultDiasAntes é o limiar aplicado quando o pendente não define um
	DefaultDiasAntes = 3
)

// PendingItem representa um registro da tabela pendientes
type PendingItem struct {
	ID                    int64  `json:"id"`
	Fecha                 string `json:"fecha"`
	Actividad             string `json:"actividad"`
	Descripcion           string `json:"descripcion"`
	Empresa               string `json:"empresa"`
	CCEmails              string `json:"cc_emails"`
	Estado                string `json:"estado"`
	Observaciones         string `json:"observaciones"`
	FechaLimite           string `json:"fecha_limite"`
	EmailNotificacion     string `json:"email_notificacion"`
	DiasAntesNotificacion *int   `json:"dias_antes_notificacion"`
	UltimaNotificacion    string `json:"ultima_notificacion,omitempty"`
}

// Threshold retorna o limiar de aviso em dias (3 quando não definido)
func (p PendingItem) Threshold() int {
	if p.DiasAntesNotificacion == nil {
		return DefaultDiasAntes
	}
	return *p.DiasAntesNotificacion
}

// CCList retorna os e-mails em cópia, separados por vírgula ou ponto e vírgula
func (p PendingItem) CCList() []string {
	return SplitEmails(p.CCEmails)
}

// SplitEmails separa uma lista de e-mails por vírgula ou ponto e vírgula
func SplitEmails(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	emails := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			emails = append(emails, f)
		}
	}
	return emails
}

// PendingRequest é o payload de criação e edição de pendentes
type PendingRequest struct {
	Fecha                 string `json:"fecha"`
	Actividad             string `json:"actividad" binding:"required"`
	Descripcion           string `json:"descripcion"`
	Empresa               string `json:"empresa"`
	CCEmails              string `json:"cc_emails"`
	Estado                string `json:"estado"`
	Observaciones         string `json:"observaciones"`
	FechaLimite           string `json:"fecha_limite"`
	EmailNotificacion     string `json:"email_notificacion"`
	DiasAntesNotificacion *int   `json:"dias_antes_notificacion" binding:"omitempty,min=0"`
}

// Normalize aplica os valores padrão do payload
func (r *PendingRequest) Normalize(today time.Time) {
	r.Actividad = strings.TrimSpace(r.Actividad)
	r.Empresa = strings.TrimSpace(r.Empresa)
	r.FechaLimite = strings.TrimSpace(r.FechaLimite)
	r.EmailNotificacion = strings.TrimSpace(r.EmailNotificacion)
	r.CCEmails = strings.Join(SplitEmails(r.CCEmails), ", ")

	if strings.TrimSpace(r.Fecha) == "" {
		r.Fecha = today.Format(DateLayout)
	}
	if strings.TrimSpace(r.Estado) == "" {
		r.Estado = EstadoPendiente
	}
	if r.DiasAntesNotificacion == nil {
		d := DefaultDiasAntes
		r.DiasAntesNotificacion = &d
	}
}

// ToItem converte o payload em um pendente
func (r PendingRequest) ToItem() PendingItem {
	return PendingItem{
		Fecha:                 r.Fecha,
		Actividad:             r.Actividad,
		Descripcion:           r.Descripcion,
		Empresa:               r.Empresa,
		CCEmails:              r.CCEmails,
		Estado:                r.Estado,
		Observaciones:         r.Observaciones,
		FechaLimite:           r.FechaLimite,
		EmailNotificacion:     r.EmailNotificacion,
		DiasAntesNotificacion: r.DiasAntesNotificacion,
	}
}
