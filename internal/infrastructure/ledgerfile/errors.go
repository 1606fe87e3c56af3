package ledgerfile

import "errors"

// Loader error codes
const (
	ErrCodeLedgerInvalidFile     = "ERR_LEDGER_INVALID_FILE"
	ErrCodeLedgerEmptyFile       = "ERR_LEDGER_EMPTY_FILE"
	ErrCodeLedgerInvalidEncoding = "ERR_LEDGER_INVALID_ENCODING"
	ErrCodeLedgerMissingHeader   = "ERR_LEDGER_MISSING_HEADER"
	ErrCodeLedgerNoDataRows      = "ERR_LEDGER_NO_DATA_ROWS"
)

// Common loader errors
var (
	// ErrEmptyFile is returned when the ledger source has no content
	ErrEmptyFile = errors.New("ledger file is empty")

	// ErrInvalidEncoding is returned when a CSV source is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when a required column is absent from the header row
	ErrMissingHeader = errors.New("ledger file missing required column")

	// ErrNoDataRows is returned when the source has a header but no usable rows
	ErrNoDataRows = errors.New("ledger file contains no data rows")

	// ErrUnsupportedFormat is returned for source files that are neither xlsx nor csv
	ErrUnsupportedFormat = errors.New("unsupported ledger file format")
)
