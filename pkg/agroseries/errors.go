package agroseries

import (
	"errors"
	"fmt"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidLayout indicates a sheet that does not match the wide layout.
var ErrInvalidLayout = parser.ErrInvalidLayout

// ErrNoTables indicates a join was requested without any input table.
var ErrNoTables = errors.New("no tables to join")

// SheetError represents an error while processing one sheet.
type SheetError struct {
	SheetName string
	Stage     string // "read", "write", "reshape", "years"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
