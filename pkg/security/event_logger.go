package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of contact-form event
type EventType string

const (
	EventContactSubmitted EventType = "contact_submitted"
	EventContactRejected  EventType = "contact_rejected"
	EventDeliveryFailed   EventType = "contact_delivery_failed"
	EventRelayUnverified  EventType = "mail_relay_unverified"
)

// Severity is derived from EventType, never from request input
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

var EventSeverityMap = map[EventType]Severity{
	EventContactSubmitted: SeverityINFO,
	EventContactRejected:  SeverityWARN,
	EventDeliveryFailed:   SeverityHIGH,
	EventRelayUnverified:  SeverityHIGH,
}

// GetSeverity returns the severity for an event type, WARN when unmapped
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityWARN
}

// Event is one entry of the audit stream. Visitor emails are masked.
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	Service      string         `json:"service"`
	Environment  string         `json:"env"`
	Event        EventType      `json:"event"`
	Severity     Severity       `json:"severity"`
	SubjectType  string         `json:"subject_type,omitempty"`  // "email", "provider"
	SubjectValue string         `json:"subject_value,omitempty"` // Masked for PII
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// EventLogger writes contact-form events as a separate JSON stream so that
// deliveries can be audited without exposing visitor data in the app log.
type EventLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	now         func() time.Time
}

// NewEventLogger builds a production zap logger writing to stdout.
func NewEventLogger(serviceName string, production bool) (*EventLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return NewEventLoggerWithZap(logger, serviceName, environment(production)), nil
}

func NewEventLoggerWithZap(logger *zap.Logger, serviceName, env string) *EventLogger {
	return &EventLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: env,
		now:         time.Now,
	}
}

// Nop discards every event.
func Nop() *EventLogger {
	return NewEventLoggerWithZap(zap.NewNop(), "", "")
}

func (sl *EventLogger) Log(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = sl.now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment
	event.Severity = GetSeverity(event.Event)

	level := zapcore.InfoLevel
	switch event.Severity {
	case SeverityWARN:
		level = zapcore.WarnLevel
	case SeverityHIGH:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
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
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogContactSubmitted records a notification handed to the relay
func (sl *EventLogger) LogContactSubmitted(ctx context.Context, email, ip, userAgent, requestID string) {
	sl.Log(ctx, Event{
		Event:        EventContactSubmitted,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"email_hash": HashValue(strings.ToLower(email))},
	})
}

// LogContactRejected records a submission that failed validation
func (sl *EventLogger) LogContactRejected(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, Event{
		Event:        EventContactRejected,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"reason": reason},
	})
}

// LogDeliveryFailed records a valid submission the relay did not accept
func (sl *EventLogger) LogDeliveryFailed(ctx context.Context, email, ip, userAgent, requestID string, cause error) {
	sl.Log(ctx, Event{
		Event:        EventDeliveryFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]any{"error": cause.Error()},
	})
}

// LogRelayUnverified records a failed startup check of the mail relay
func (sl *EventLogger) LogRelayUnverified(ctx context.Context, provider string, cause error) {
	sl.Log(ctx, Event{
		Event:        EventRelayUnverified,
		SubjectType:  "provider",
		SubjectValue: provider,
		Details:      map[string]any{"error": cause.Error()},
	})
}

// Sync flushes any buffered log entries
func (sl *EventLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com").
// Input without an "@" is masked entirely.
func MaskEmail(email string) string {
	atIndex := strings.IndexByte(email, '@')
	if atIndex < 0 {
		return "***"
	}
	first, size := utf8.DecodeRuneInString(email)
	if atIndex <= size {
		return "***" + email[atIndex:]
	}
	return string(first) + "***" + email[atIndex:]
}

// HashValue creates a short SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func environment(production bool) string {
	if production {
		return "production"
	}
	return "development"
}
