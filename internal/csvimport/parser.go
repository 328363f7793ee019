// Package csvimport reads label pairs from CSV files.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/japanese"

	"github.com/letterpack/letterpack/internal/model"
)

// Column names
const (
	ColToPostal      = "to_postal"
	ColToAddress1    = "to_address1"
	ColToAddress2    = "to_address2"
	ColToAddress3    = "to_address3"
	ColToName        = "to_name"
	ColToPhone       = "to_phone"
	ColToHonorific   = "to_honorific"
	ColFromPostal    = "from_postal"
	ColFromAddress1  = "from_address1"
	ColFromAddress2  = "from_address2"
	ColFromAddress3  = "from_address3"
	ColFromName      = "from_name"
	ColFromPhone     = "from_phone"
	ColFromHonorific = "from_honorific"
)

// Header is the full column list in the order WriteSample emits it
var Header = []string{
	ColToPostal, ColToAddress1, ColToAddress2, ColToAddress3, ColToName, ColToPhone, ColToHonorific,
	ColFromPostal, ColFromAddress1, ColFromAddress2, ColFromAddress3, ColFromName, ColFromPhone, ColFromHonorific,
}

// RequiredColumns must be present in every header
var RequiredColumns = []string{ColToPostal, ColToAddress1, ColToName, ColFromPostal, ColFromAddress1, ColFromName}

// aliases maps single-line address columns to their first-line name
var aliases = map[string]string{
	"to_address":   ColToAddress1,
	"from_address": ColFromAddress1,
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Parser reads label pairs from CSV
type Parser struct {
	delimiter        rune
	defaultHonorific bool
	logger           *zap.Logger
}

// ParserOption is a functional option for Parser configuration
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// WithDefaultHonorific controls whether recipients without an honorific get 様
func WithDefaultHonorific(enabled bool) ParserOption {
	return func(p *Parser) {
		p.defaultHonorific = enabled
	}
}

// WithLogger sets the logger unknown columns are reported on
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		delimiter:        ',',
		defaultHonorific: true,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is a successfully parsed file
type Result struct {
	Pairs []model.LabelPair
	// UnknownColumns were present in the header and ignored
	UnknownColumns []string
}

// ParseFile parses the CSV file at path
func (p *Parser) ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading CSV file: %w", err)
	}
	return p.ParseBytes(data)
}

// Parse reads all of r and parses it
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses UTF-8 (optionally with BOM) or Shift_JIS CSV data.
// Every invalid row is reported in an *ImportError.
func (p *Parser) ParseBytes(data []byte) (*Result, error) {
	data, err := decode(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, unknown := mapHeader(record)
	if missing := missingColumns(columns); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	if len(unknown) > 0 {
		p.logger.Warn("Ignoring unknown CSV columns", zap.Strings("columns", unknown))
	}

	result := &Result{UnknownColumns: unknown}
	var rowErrs []RowError
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		get := func(col string) string {
			idx, ok := columns[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		if isBlank(record) {
			continue
		}

		pair, err := model.NewLabelPair(
			model.Address{
				PostalCode: get(ColToPostal),
				Address1:   get(ColToAddress1),
				Address2:   get(ColToAddress2),
				Address3:   get(ColToAddress3),
				Name:       get(ColToName),
				Phone:      get(ColToPhone),
				Honorific:  get(ColToHonorific),
			},
			model.Address{
				PostalCode: get(ColFromPostal),
				Address1:   get(ColFromAddress1),
				Address2:   get(ColFromAddress2),
				Address3:   get(ColFromAddress3),
				Name:       get(ColFromName),
				Phone:      get(ColFromPhone),
				Honorific:  get(ColFromHonorific),
			},
			p.defaultHonorific,
		)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: line, Side: sideOf(err), Err: err})
			continue
		}
		result.Pairs = append(result.Pairs, pair)
	}

	if len(rowErrs) > 0 {
		return nil, &ImportError{Rows: rowErrs}
	}
	if len(result.Pairs) == 0 {
		return nil, ErrNoDataRows
	}
	return result, nil
}

// decode strips a UTF-8 BOM and converts Shift_JIS input to UTF-8
func decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, bom)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
		return nil, ErrInvalidEncoding
	}
	return out, nil
}

func mapHeader(record []string) (map[string]int, []string) {
	columns := make(map[string]int, len(record))
	var unknown []string
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if canonical, ok := aliases[name]; ok {
			name = canonical
		} else if !slices.Contains(Header, name) {
			unknown = append(unknown, h)
			continue
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns, unknown
}

func missingColumns(columns map[string]int) []string {
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func sideOf(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Side
	}
	return ""
}

// ParseFile parses path with a default parser
func ParseFile(path string, opts ...ParserOption) (*Result, error) {
	return NewParser(opts...).ParseFile(path)
}
