package logging

// Standard field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldSource     = "source"
	FieldFormat     = "format"
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldStrategy   = "strategy"
	FieldCategory   = "category"
	FieldMerchant   = "merchant"
	FieldConfidence = "confidence"
	FieldDirection  = "direction"
	FieldPattern    = "pattern"
	FieldSegments   = "segments"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldDuration   = "duration_ms"
	FieldTraceID    = "trace_id"
	FieldError      = "error"
)
