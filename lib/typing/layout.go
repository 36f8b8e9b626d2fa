package typing

// Literal layouts understood by every supported warehouse.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05.999999"
	TimestampLayout = "2006-01-02 15:04:05.999999"
)
