package service

import (
	"fmt"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/model"
)

// Urgency classifica o quão próximo está o prazo
type Urgency int

const (
	UrgencyDueSoon Urgency = iota
	UrgencyDueToday
	UrgencyOverdue
)

func (u Urgency) String() string {
	switch u {
	case UrgencyDueToday:
		return "due_today"
	case UrgencyOverdue:
		return "overdue"
	default:
		return "due_soon"
	}
}

// Reminder é a decisão de enviar lembrete para um pendente
type Reminder struct {
	Item          model.PendingItem
	DaysRemaining int
	Urgency       Urgency
}

// Label retorna o texto de urgência usado no e-mail
func (r Reminder) Label() string {
	switch r.Urgency {
	case UrgencyDueToday:
		return "¡Vence hoy!"
	case UrgencyOverdue:
		return "¡Venció hace un día!"
	default:
		return fmt.Sprintf("Vence en %d días", r.DaysRemaining)
	}
}

// IsWeekend indica sábado ou domingo
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDeadline interpreta uma data AAAA-MM-DD de forma estrita
func ParseDeadline(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, model.ErrInvalidDate
	}
	return d, nil
}

// DaysUntil retorna a diferença em dias de calendário entre today e deadline
func DaysUntil(today, deadline time.Time) int {
	y, m, d := today.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = deadline.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// Unix evita o limite de ~292 anos de time.Duration
	return int((to.Unix() - from.Unix()) / 86400)
}

// Evaluate decide se o pendente deve receber lembrete em today.
// Só pendentes no estado Pendiente, com prazo válido, e-mail configurado
// e -1 <= dias restantes <= limiar entram na janela.
func Evaluate(item model.PendingItem, today time.Time) (Reminder, bool) {
	if item.Estado != model.EstadoPendiente {
		return Reminder{}, false
	}
	deadline, err := ParseDeadline(item.FechaLimite)
	if err != nil {
		return Reminder{}, false
	}

	days := DaysUntil(today, deadline)
	if days < -1 || days > item.Threshold() {
		return Reminder{}, false
	}
	if item.EmailNotificacion == "" {
		return Reminder{}, false
	}

	r := Reminder{Item: item, DaysRemaining: days, Urgency: UrgencyDueSoon}
	switch {
	case days == 0:
		r.Urgency = UrgencyDueToday
	case days < 0:
		r.Urgency = UrgencyOverdue
	}
	return r, true
}
