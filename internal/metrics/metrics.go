package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pendientes_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Lembretes de prazo
	NotificationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_notification_runs_total",
		Help: "Deadline evaluation passes by trigger (scheduled/manual) and outcome",
	}, []string{"trigger", "outcome"})
	RemindersSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_reminders_sent_total",
		Help: "Reminder e-mails delivered by trigger",
	}, []string{"trigger"})
	RemindersFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_reminders_failed_total",
		Help: "Reminder e-mails that could not be delivered by trigger",
	}, []string{"trigger"})

	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_mail_send_success_total",
		Help: "Total number of successfully sent e-mails",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_mail_send_failure_total",
		Help: "Total number of e-mails that failed to send",
	}, []string{"host"})

	// Conversão de tarefas de clientes em pendentes
	PendingItemsFromTasks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pendientes_items_from_client_tasks_total",
		Help: "Pending items created from open client tasks",
	})
	ReportsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pendientes_reports_generated_total",
		Help: "Spreadsheet exports generated by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(NotificationRuns)
	prometheus.MustRegister(RemindersSent)
	prometheus.MustRegister(RemindersFailed)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(PendingItemsFromTasks)
	prometheus.MustRegister(ReportsGenerated)
}

// Handler retorna o handler HTTP da exposição Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

// Uptime retorna há quanto tempo o processo está no ar
func Uptime() time.Duration {
	return time.Since(startTime)
}

// StartTime retorna o instante de inicialização do processo
func StartTime() time.Time {
	return startTime
}
