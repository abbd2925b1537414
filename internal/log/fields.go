package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldSource    = "source"
	FieldRows      = "rows"
	FieldColumns   = "columns"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldOutput    = "output"
	FieldPOs       = "pos"
	FieldSpend     = "spend_cents"
	FieldSuppliers = "suppliers"
	FieldBuyers    = "buyers"
	FieldModels    = "models"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentLoader   = "loader"
	ComponentBackend  = "backend"
	ComponentPipeline = "pipeline"
)

// Operations defines standard operation names
const (
	OpSummarize = "summarize"
	OpRender    = "render"
	OpPublish   = "publish"
	OpImport    = "import"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds the error text; a nil error leaves the fields unchanged.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithSummary adds the whole-table totals of a run.
func (f LogFields) WithSummary(pos int, spendCents int64, suppliers, buyers int) LogFields {
	f[FieldPOs] = pos
	f[FieldSpend] = spendCents
	f[FieldSuppliers] = suppliers
	f[FieldBuyers] = buyers
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
