package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldCardID       = "card_id"
	FieldCardName     = "card_name"
	FieldDueDay       = "due_day"
	FieldDueDate      = "due_date"
	FieldDaysUntilDue = "days_until_due"
	FieldLevel        = "level"
	FieldYear         = "year"
	FieldMonth        = "month"
	FieldLabel        = "label"
	FieldAmountCents  = "amount_cents"
	FieldCategory     = "category"
	FieldSheetsRef    = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentBilling   = "billing"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentScanner   = "scanner"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpList     = "list"
	OpAssemble = "assemble"
	OpScan     = "scan"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpExport   = "export"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCard adds card identity fields
func (f LogFields) WithCard(id, name string, dueDay int) LogFields {
	f[FieldCardID] = id
	f[FieldCardName] = name
	f[FieldDueDay] = dueDay
	return f
}

// WithInvoice adds invoice cycle fields
func (f LogFields) WithInvoice(year, month int, totalCents int64) LogFields {
	f[FieldYear] = year
	f[FieldMonth] = month
	f[FieldAmountCents] = totalCents
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
