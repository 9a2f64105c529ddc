package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Construction/validation errors (100-199)
	ErrCodeInvalidParameter  ErrorCode = 100
	ErrCodeInvalidPeriod     ErrorCode = 101
	ErrCodeInvalidMultiplier ErrorCode = 102
	ErrCodeInvalidShift      ErrorCode = 103
	ErrCodePeriodOrder       ErrorCode = 104
	ErrCodeInvalidPercentage ErrorCode = 105
	ErrCodeInvalidAction     ErrorCode = 106
	ErrCodeInvalidConfig     ErrorCode = 107

	// Evaluation errors (200-299)
	ErrCodeShapeMismatch        ErrorCode = 200
	ErrCodeMissingCandleContext ErrorCode = 201
	ErrCodeNotComparable        ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorNotReady    ErrorCode = 300
	ErrCodeIndicatorInvalidated ErrorCode = 301
	ErrCodeUnknownIndicator     ErrorCode = 302
	ErrCodeMissingIndicator     ErrorCode = 303

	// Strategy/validation errors (400-499)
	ErrCodeEmptySequence      ErrorCode = 400
	ErrCodeMissingBranch      ErrorCode = 401
	ErrCodeUnknownNode        ErrorCode = 402
	ErrCodeUnknownCondition   ErrorCode = 403
	ErrCodeStrategyNotReady   ErrorCode = 404
	ErrCodeInvalidStrategy    ErrorCode = 405
	ErrCodeMissingComparand   ErrorCode = 406
	ErrCodeAmbiguousComparand ErrorCode = 407

	// Serialization errors (500-599)
	ErrCodeDecodeFailed      ErrorCode = 500
	ErrCodeEncodeFailed      ErrorCode = 501
	ErrCodeMissingTypeTag    ErrorCode = 502
	ErrCodeUnknownTypeTag    ErrorCode = 503
	ErrCodeMissingField      ErrorCode = 504
	ErrCodeInvalidFieldType  ErrorCode = 505
	ErrCodeUnsupportedFormat ErrorCode = 506

	// Data errors (600-699)
	ErrCodeDataSourceEmpty ErrorCode = 600
	ErrCodeDataParseFailed ErrorCode = 601
)
