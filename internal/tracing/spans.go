package tracing

// Span attribute keys.
const (
	AttrCommand = "cli.command"
	AttrArgs    = "cli.args"

	AttrSystem       = "unit.system"
	AttrSourceUnit   = "unit.source"
	AttrTargetUnit   = "unit.target"
	AttrDimension    = "unit.dimension"
	AttrConverter    = "unit.converter"
	AttrOperator     = "quantity.operator"
	AttrLeftType     = "quantity.left.type"
	AttrRightType    = "quantity.right.type"
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanPrefixCommand   = "cli."
	SpanCreateSystem    = "system.create"
	SpanCreateConverter = "system.converter"
	SpanDispatch        = "quantity.dispatch"
)

// Event names.
const (
	EventConverterResolved = "converter.resolved"
	EventErrorOccurred     = "error.occurred"
)
