package models

// SheetFile describes one sheet written to its own workbook by the splitter.
type SheetFile struct {
	// Name is the source sheet name.
	Name string `yaml:"name"`
	// Path is the output workbook path.
	Path string `yaml:"path"`
	// Dimension is the used range of the source sheet (e.g. "A1:K40").
	Dimension string `yaml:"dimension,omitempty"`
	// Cells is the number of non-empty cells copied.
	Cells int `yaml:"cells"`
}
