package model

// ErrorCode identifies why a statement was rejected. Exactly one code is
// reported per failed document, chosen by the first violated validation rule.
type ErrorCode string

// The error taxonomy.
const (
	ErrCodeInvalidAccount       ErrorCode = "INVALID_ACCOUNT"
	ErrCodeMissingStatementDate ErrorCode = "MISSING_STATEMENT_DATE"
	ErrCodeMissingBalance       ErrorCode = "MISSING_BALANCE"
	ErrCodeMissingPeriodDates   ErrorCode = "MISSING_PERIOD_DATES"
	ErrCodeParse                ErrorCode = "PARSE_ERROR"
)

// Valid reports whether c is one of the five fixed error codes.
func (c ErrorCode) Valid() bool {
	switch c {
	case ErrCodeInvalidAccount, ErrCodeMissingStatementDate, ErrCodeMissingBalance,
		ErrCodeMissingPeriodDates, ErrCodeParse:
		return true
	}
	return false
}

// ErrorRecord is the error payload of a failed extraction.
type ErrorRecord struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the single output shape of the engine. Exactly one of Data and
// Error is set: a success response carries a complete record and no error, a
// failure carries an error and no data, never both and never neither.
type Response struct {
	Status string           `json:"status"`
	Data   *StatementRecord `json:"data,omitempty"`
	Error  *ErrorRecord     `json:"error,omitempty"`
}

// OK reports whether the response carries a success payload.
func (r Response) OK() bool {
	return r.Status == StatusSuccess
}
