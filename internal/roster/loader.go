package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ErrMalformedInput means the roster could not be opened or read at all.
// A single bad row is never an error; it comes back as a skipped row.
var ErrMalformedInput = errors.New("malformed roster")

// Reader yields tagged rows from a CSV roster, one at a time.
type Reader struct {
	r    *csv.Reader
	cols Columns
}

// NewReader consumes the header row of r. The header is discarded unread.
func NewReader(r io.Reader, cols Columns) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no header row", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedInput, err)
	}
	return &Reader{r: cr, cols: cols}, nil
}

// Next returns the next data row, or io.EOF when the roster is exhausted.
func (rd *Reader) Next() (Row, error) {
	cells, err := rd.r.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return Row{Line: perr.StartLine, Outcome: Skipped, Reason: ReasonMalformedRow}, nil
	}
	if err != nil {
		return Row{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	line, _ := rd.r.FieldPos(0)
	for _, c := range cells {
		if !utf8.ValidString(c) {
			return Row{Line: line, Outcome: Skipped, Reason: ReasonMalformedRow}, nil
		}
	}
	return classify(line, cells, rd.cols), nil
}

// ReadAll drains the reader.
func (rd *Reader) ReadAll() ([]Row, error) {
	var out []Row
	for {
		row, err := rd.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
}

// LoadFile reads every row of the roster at path.
func LoadFile(path string, cols Columns) ([]Row, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer fp.Close()

	rd, err := NewReader(fp, cols)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	rows, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}
