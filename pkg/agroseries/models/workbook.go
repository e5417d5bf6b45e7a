package models

// SplitResult is the outcome of splitting a workbook into one file per sheet.
type SplitResult struct {
	// BookName is the source workbook file name (no path).
	BookName string `yaml:"book_name"`
	// Sheets lists the written sheets in workbook order.
	Sheets []SheetFile `yaml:"sheets"`
}
