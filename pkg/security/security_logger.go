package security

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventTokenRejected      EventType = "token_rejected"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     EventType              `json:"event"`
	Subject   string                 `json:"subject,omitempty"` // masked for PII
	IP        string                 `json:"ip,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for security events,
// separate from the application log so the audit trail can be shipped
// to its own sink.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *SecurityLogger
	defaultOnce   sync.Once
)

// InitSecurityLogger initializes the process-wide security logger.
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	defaultOnce.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}

		logger, err := config.Build()
		if err != nil {
			logger, _ = zap.NewProduction()
		}

		defaultLogger = &SecurityLogger{
			zapLogger:   logger,
			serviceName: serviceName,
			environment: environment,
		}
	})
	return defaultLogger
}

// DefaultLogger returns the process-wide security logger, initializing a
// fallback if InitSecurityLogger was never called.
func DefaultLogger() *SecurityLogger {
	if defaultLogger == nil {
		return InitSecurityLogger("portfolio-backend", "unknown")
	}
	return defaultLogger
}

// LogEvent writes a security event to the audit log.
func (sl *SecurityLogger) LogEvent(event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	switch event.Event {
	case EventLoginBlocked, EventUnauthorizedAccess:
		sl.zapLogger.Warn("security event", fields...)
	default:
		sl.zapLogger.Info("security event", fields...)
	}
}

// MaskEmail masks the local part of an email for PII-safe logging:
// "jane.doe@example.com" -> "j***e@example.com"
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	local := email[:at]
	if len(local) <= 2 {
		return "***" + email[at:]
	}
	return local[:1] + "***" + local[len(local)-1:] + email[at:]
}
