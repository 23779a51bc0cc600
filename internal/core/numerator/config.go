// Package numerator provides domain contracts for document auto-numbering.
package numerator

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "INV")
	Prefix string

	// DateLayout is rendered between prefix and counter. The counter
	// restarts whenever the rendered date changes.
	DateLayout string

	// PadWidth is the minimum counter width.
	PadWidth int
}

// InvoiceConfig returns daily invoice numbering: INV-YYYYMMDD-0001.
func InvoiceConfig() Config {
	return Config{
		Prefix:     "INV",
		DateLayout: "20060102",
		PadWidth:   4,
	}
}
