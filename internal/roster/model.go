package roster

// Record is one member row of a roster.
type Record struct {
	Sequence  string `json:"sequence"`
	Honorific string `json:"honorific"`
	Family    string `json:"family"`
	Given     string `json:"given"`
	Note      string `json:"note,omitempty"`
	FullName  string `json:"full_name"`
}

// Outcome tags a parsed row.
type Outcome int

const (
	Included Outcome = iota
	Skipped
)

func (o Outcome) String() string {
	if o == Included {
		return "included"
	}
	return "skipped"
}

// MarshalText lets rows render as "included"/"skipped" in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Skip reasons.
const (
	ReasonNotNumbered  = "not-numbered"
	ReasonShortRow     = "short-row"
	ReasonEmptyName    = "empty-name"
	ReasonMalformedRow = "malformed-row"
)

// Row is a data row after the header, tagged with its outcome.
type Row struct {
	Line    int     `json:"line"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
	Record  Record  `json:"record"`
}

// Columns holds the 0-based column indices of a roster schema.
// Note is -1 when the schema has no note column.
type Columns struct {
	Sequence  int
	Honorific int
	Family    int
	Given     int
	Note      int
}

// ColumnsAt derives the schema from a single offset. Offset 0 is
// [seq, honorific, family, given]; offset 1 is [note, seq, honorific, family, given].
func ColumnsAt(offset int) Columns {
	if offset < 0 {
		offset = 0
	}
	note := offset - 1
	if offset == 0 {
		note = -1
	}
	return Columns{
		Sequence:  offset,
		Honorific: offset + 1,
		Family:    offset + 2,
		Given:     offset + 3,
		Note:      note,
	}
}

// width is the minimum number of cells a row needs.
func (c Columns) width() int {
	w := 0
	for _, i := range []int{c.Sequence, c.Honorific, c.Family, c.Given, c.Note} {
		if i+1 > w {
			w = i + 1
		}
	}
	return w
}
