// Package csv reads a whole CSV file into a typed table.Table and writes one
// back. Column kinds are inferred the way a dataframe reader infers them: a
// column is Int when every cell is an integer and none is missing, Float when
// every present cell is numeric, String otherwise.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"oncoclean/internal/table"
)

// DefaultNullTokens are the cell values read as missing. The dataset's
// "None" and "N/A" labels are deliberately absent: they are categories.
var DefaultNullTokens = []string{"", "NaN", "nan", "NULL", "null", "<NA>"}

// maxLoggedSkips bounds per-row skip logging on badly broken inputs.
const maxLoggedSkips = 20

// Options configures the reader. The zero value reads comma-separated input
// with DefaultNullTokens and raw headers.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// NullTokens replaces DefaultNullTokens when non-nil.
	NullTokens []string

	// NormalizeHeaders rewrites headers with NormalizeHeader.
	NormalizeHeaders bool

	// Logf receives one line per skipped row. Optional.
	Logf func(format string, args ...any)
}

// Parser reads CSV input according to Options. It is safe to reuse across
// inputs but not for concurrent use.
type Parser struct {
	opt   Options
	nulls map[string]struct{}
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	tokens := opt.NullTokens
	if tokens == nil {
		tokens = DefaultNullTokens
	}
	nulls := make(map[string]struct{}, len(tokens))
	for _, s := range tokens {
		nulls[s] = struct{}{}
	}
	return &Parser{opt: opt, nulls: nulls}
}

// Parse reads the header and every data row of r. Rows whose width differs
// from the header, or that the CSV reader cannot decode, are skipped and
// counted.
func (p *Parser) Parse(r io.Reader) (*table.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("read csv header: empty input")
		}
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	header = StripHeaderBOM(header)
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		if p.opt.NormalizeHeaders {
			h = NormalizeHeader(h)
			header[i] = h
		}
		if _, dup := seen[h]; dup {
			return nil, 0, fmt.Errorf("read csv header: duplicate column %q", h)
		}
		seen[h] = struct{}{}
	}

	var raw [][]string
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.skip(&skipped, "row %d: %v", line, err)
			continue
		}
		if len(row) != len(header) {
			p.skip(&skipped, "row %d: incorrect number of fields (expected %d, got %d)", line, len(header), len(row))
			continue
		}
		raw = append(raw, row)
	}

	kinds := make([]table.Kind, len(header))
	for j := range header {
		kinds[j] = p.inferKind(raw, j)
	}

	t := table.New(header, kinds)
	t.Rows = make([][]any, len(raw))
	for i, row := range raw {
		cells := make([]any, len(row))
		for j, s := range row {
			if p.isNull(s) {
				continue
			}
			switch kinds[j] {
			case table.Int:
				cells[j], _ = strconv.ParseInt(s, 10, 64)
			case table.Float:
				cells[j], _ = strconv.ParseFloat(s, 64)
			default:
				cells[j] = s
			}
		}
		t.Rows[i] = cells
	}
	return t, skipped, nil
}

func (p *Parser) skip(n *int, format string, args ...any) {
	if *n < maxLoggedSkips && p.opt.Logf != nil {
		p.opt.Logf("csv: skipping "+format, args...)
	}
	*n++
}

func (p *Parser) isNull(s string) bool {
	_, ok := p.nulls[s]
	return ok
}

// inferKind picks the narrowest kind that holds every present value of
// column j. A column with no present values is Float, matching an all-NaN
// numeric column.
func (p *Parser) inferKind(rows [][]string, j int) table.Kind {
	allInt, allNum, missing := true, true, false
	for _, row := range rows {
		s := row[j]
		if p.isNull(s) {
			missing = true
			continue
		}
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allNum = false
			break
		}
	}
	switch {
	case allNum && allInt && !missing:
		return table.Int
	case allNum:
		return table.Float
	default:
		return table.String
	}
}
