package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRegistrations formats a list of registrations as JSON
func (f *Formatter) FormatRegistrations(registrations []RegistrationDTO) error {
	if registrations == nil {
		registrations = []RegistrationDTO{}
	}
	return f.encode(registrations)
}

// FormatCatalog formats the add-on catalog as JSON
func (f *Formatter) FormatCatalog(addOns []AddOnDTO) error {
	return f.encode(addOns)
}

// FormatExports formats pass export results as JSON
func (f *Formatter) FormatExports(results []ExportDTO) error {
	return f.encode(results)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
