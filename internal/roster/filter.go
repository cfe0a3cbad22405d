package roster

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Dates like 06/08/2019 or 6-8-2019 tell apart members sharing a name.
var notePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$`)

// IsNumbered reports whether s is a non-empty run of ASCII digits.
func IsNumbered(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MatchNote returns the trimmed note if it is a date, "" otherwise.
func MatchNote(s string) string {
	s = strings.TrimSpace(s)
	if notePattern.MatchString(s) {
		return s
	}
	return ""
}

// cleanCell NFC-normalizes a cell and collapses whitespace, no-break
// spaces included, to single spaces.
func cleanCell(s string) string {
	s = strings.ReplaceAll(norm.NFC.String(s), "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName joins name parts with single spaces, dropping empty parts
// and no-break spaces. Runs of whitespace inside a part also collapse to one
// space, so "Trần  Di" and "Trần Di" yield the same name and the same payload.
func NormalizeName(parts ...string) string {
	return cleanCell(strings.Join(parts, " "))
}

// NewRecord cleans raw cell values into a Record. A note that is not a date
// is dropped.
func NewRecord(seq, honorific, family, given, note string) Record {
	rec := Record{
		Sequence:  strings.TrimSpace(seq),
		Honorific: cleanCell(honorific),
		Family:    cleanCell(family),
		Given:     cleanCell(given),
		Note:      MatchNote(note),
	}
	rec.FullName = NormalizeName(rec.Honorific, rec.Family, rec.Given)
	return rec
}

// classify turns a raw CSV row into a tagged Row.
func classify(line int, cells []string, cols Columns) Row {
	row := Row{Line: line, Outcome: Skipped}
	if len(cells) < cols.width() {
		row.Reason = ReasonShortRow
		return row
	}
	seq := strings.TrimSpace(cells[cols.Sequence])
	if !IsNumbered(seq) {
		row.Reason = ReasonNotNumbered
		return row
	}

	note := ""
	if cols.Note >= 0 {
		note = cells[cols.Note]
	}
	rec := NewRecord(seq, cells[cols.Honorific], cells[cols.Family], cells[cols.Given], note)
	row.Record = rec
	if rec.FullName == "" {
		row.Reason = ReasonEmptyName
		return row
	}

	row.Outcome = Included
	return row
}

// Included returns the records of the included rows, in order.
func Included(rows []Row) []Record {
	var out []Record
	for _, r := range rows {
		if r.Outcome == Included {
			out = append(out, r.Record)
		}
	}
	return out
}

// Count tallies included and skipped rows.
func Count(rows []Row) (included, skipped int) {
	for _, r := range rows {
		if r.Outcome == Included {
			included++
		} else {
			skipped++
		}
	}
	return included, skipped
}
