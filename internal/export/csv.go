// Package export renders the inventory as CSV or JSON.
package export

import (
	"io"
	"strconv"
	"strings"
)

type Quoting int

const (
	QuoteMinimal Quoting = iota
	QuoteAll
	QuoteNonNumeric
)

type Dialect struct {
	Delimiter      string
	Quote          string
	LineTerminator string
	Quoting        Quoting
}

var DefaultDialect = Dialect{
	Delimiter:      ",",
	Quote:          `"`,
	LineTerminator: "\n",
	Quoting:        QuoteMinimal,
}

// Writer writes rows separated by the dialect's line terminator, without
// a terminator after the last row.
type Writer struct {
	w       io.Writer
	dialect Dialect
	rows    int
}

func NewWriter(w io.Writer, dialect Dialect) *Writer {
	return &Writer{w: w, dialect: dialect}
}

func (w *Writer) Write(row []string) error {
	var b strings.Builder
	if w.rows > 0 {
		b.WriteString(w.dialect.LineTerminator)
	}
	for i, cell := range row {
		if i > 0 {
			b.WriteString(w.dialect.Delimiter)
		}
		b.WriteString(EscapeCell(cell, w.dialect))
	}
	if _, err := io.WriteString(w.w, b.String()); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *Writer) WriteAll(rows [][]string) error {
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Format renders rows with dialect.
func Format(rows [][]string, dialect Dialect) string {
	var b strings.Builder
	_ = NewWriter(&b, dialect).WriteAll(rows)
	return b.String()
}

// EscapeCell quotes cell as the dialect requires. Embedded quote
// characters are doubled.
func EscapeCell(cell string, dialect Dialect) string {
	quote := false
	switch dialect.Quoting {
	case QuoteAll:
		quote = true
	case QuoteNonNumeric:
		quote = !isNumeric(cell)
	}

	if strings.Contains(cell, dialect.Delimiter) ||
		strings.Contains(cell, dialect.LineTerminator) ||
		strings.ContainsAny(cell, "\r\n") {
		quote = true
	}
	if strings.Contains(cell, dialect.Quote) {
		cell = strings.ReplaceAll(cell, dialect.Quote, dialect.Quote+dialect.Quote)
		quote = true
	}

	if quote {
		return dialect.Quote + cell + dialect.Quote
	}
	return cell
}

func isNumeric(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
