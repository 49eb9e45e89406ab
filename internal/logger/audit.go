package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	// Pending item operations
	AuditActionPendingCreate   AuditAction = "PENDING_CREATE"
	AuditActionPendingUpdate   AuditAction = "PENDING_UPDATE"
	AuditActionPendingDelete   AuditAction = "PENDING_DELETE"
	AuditActionPendingComplete AuditAction = "PENDING_COMPLETE"

	// Client operations
	AuditActionClientCreate AuditAction = "CLIENT_CREATE"
	AuditActionClientUpdate AuditAction = "CLIENT_UPDATE"
	AuditActionClientDelete AuditAction = "CLIENT_DELETE"
	AuditActionClientImport AuditAction = "CLIENT_IMPORT"

	// Client task operations
	AuditActionTaskCreate  AuditAction = "TASK_CREATE"
	AuditActionTaskUpdate  AuditAction = "TASK_UPDATE"
	AuditActionTaskDelete  AuditAction = "TASK_DELETE"
	AuditActionTaskGlobal  AuditAction = "TASK_GLOBAL"
	AuditActionTaskConvert AuditAction = "TASK_CONVERT"

	// Notification operations
	AuditActionNotifySend  AuditAction = "NOTIFY_SEND"
	AuditActionNotifyCheck AuditAction = "NOTIFY_CHECK"

	// Report operations
	AuditActionReportDownload AuditAction = "REPORT_DOWNLOAD"

	// API operations
	AuditActionAPIRequest AuditAction = "API_REQUEST"
	AuditActionAPIError   AuditAction = "API_ERROR"
)

// AuditEvent represents an audit log entry
type AuditEvent struct {
	Action      AuditAction
	Resource    string
	ResourceID  string
	Details     map[string]interface{}
	ClientIP    string
	RequestID   string
	OperationID string
	Success     bool
	Error       string
	Duration    int64 // Duration in milliseconds
	Method      string
	Path        string
	StatusCode  int
}

// auditLogger is a specialized logger for audit events
var auditLogger zerolog.Logger = globalLogger.With().Str("log_type", "audit").Logger()

// InitAudit initializes the audit logger
func InitAudit() {
	auditLogger = globalLogger.With().Str("log_type", "audit").Logger()
}

// Audit logs an audit event
func Audit(ctx context.Context, event AuditEvent) {
	requestID := GetRequestID(ctx)
	if requestID != "" && event.RequestID == "" {
		event.RequestID = requestID
	}

	operationID := GetOperationID(ctx)
	if operationID != "" && event.OperationID == "" {
		event.OperationID = operationID
	}

	logEvent := auditLogger.Info()
	if !event.Success {
		logEvent = auditLogger.Warn()
	}

	logEvent.
		Str("action", string(event.Action)).
		Str("resource", event.Resource).
		Str("resource_id", event.ResourceID).
		Str("client_ip", event.ClientIP).
		Str("request_id", event.RequestID).
		Bool("success", event.Success).
		Time("timestamp", time.Now().UTC())

	if event.OperationID != "" {
		logEvent.Str("operation_id", event.OperationID)
	}

	if event.Error != "" {
		logEvent.Str("error", event.Error)
	}

	if event.Duration > 0 {
		logEvent.Int64("duration_ms", event.Duration)
	}

	if event.Method != "" {
		logEvent.Str("method", event.Method)
	}

	if event.Path != "" {
		logEvent.Str("path", event.Path)
	}

	if event.StatusCode > 0 {
		logEvent.Int("status_code", event.StatusCode)
	}

	if len(event.Details) > 0 {
		logEvent.Interface("details", event.Details)
	}

	logEvent.Msg("Audit event")
}

// AuditRequest logs an API request audit event
func AuditRequest(ctx context.Context, method, path string, statusCode int, duration int64, clientIP string) {
	success := statusCode < 400
	action := AuditActionAPIRequest
	if !success {
		action = AuditActionAPIError
	}

	Audit(ctx, AuditEvent{
		Action:     action,
		Resource:   "api",
		ResourceID: path,
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Duration:   duration,
		ClientIP:   clientIP,
		Success:    success,
	})
}
