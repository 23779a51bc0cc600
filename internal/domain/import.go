package domain

import "fmt"

// ImportRow is one spreadsheet data row keyed by header name.
type ImportRow map[string]string

// ImportResult reports the outcome of a bulk spreadsheet import.
type ImportResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// ValidationFailed returns the result for an import rejected before any write.
func ValidationFailed(errs []string) ImportResult {
	return ImportResult{Message: "Validation failed", Errors: errs}
}

// Imported returns the result after rows were written. noun is plural, e.g. "products".
func Imported(n int, noun string, errs []string) ImportResult {
	res := ImportResult{
		Success:  n > 0,
		Message:  fmt.Sprintf("Imported %d %s", n, noun),
		Imported: n,
	}
	if len(errs) > 0 {
		res.Errors = errs
	}
	return res
}

// RowNumber returns the 1-based sheet row of the i-th data row (row 1 is the header).
func RowNumber(i int) int {
	return i + 2
}
