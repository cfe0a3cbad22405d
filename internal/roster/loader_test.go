package roster

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Têrêsa Calcutta Trần Di An", NormalizeName("Têrêsa Calcutta", "Trần Di", "An"))
	assert.Equal(t, "Trần An", NormalizeName("", " Trần ", "An "))
	assert.Equal(t, "", NormalizeName(" ", " ", ""))
}

func TestNormalizeNameComposesDiacritics(t *testing.T) {
	// "Trần" spelled with combining marks.
	decomposed := "Tra\u0302\u0300n"
	assert.Equal(t, "Trần An", NormalizeName(decomposed, "An"))
}

func TestIsNumbered(t *testing.T) {
	assert.True(t, IsNumbered("3"))
	assert.True(t, IsNumbered("012"))
	assert.False(t, IsNumbered(""))
	assert.False(t, IsNumbered("abc"))
	assert.False(t, IsNumbered("STT"))
	assert.False(t, IsNumbered("1a"))
	assert.False(t, IsNumbered("٣"))
}

func TestMatchNote(t *testing.T) {
	assert.Equal(t, "06/08/2019", MatchNote(" 06/08/2019 "))
	assert.Equal(t, "6-8-2019", MatchNote("6-8-2019"))
	assert.Equal(t, "", MatchNote("1"))
	assert.Equal(t, "", MatchNote("new member"))
	assert.Equal(t, "", MatchNote("2019/08/06"))
}

func TestColumnsAt(t *testing.T) {
	assert.Equal(t, Columns{Sequence: 0, Honorific: 1, Family: 2, Given: 3, Note: -1}, ColumnsAt(0))
	assert.Equal(t, Columns{Sequence: 1, Honorific: 2, Family: 3, Given: 4, Note: 0}, ColumnsAt(1))
	assert.Equal(t, 4, ColumnsAt(0).width())
	assert.Equal(t, 5, ColumnsAt(1).width())
}

func TestReaderFiltersRows(t *testing.T) {
	in := strings.Join([]string{
		"STT,Tên Thánh,Họ,Tên",
		"1,Maria,Tran,An",
		"abc,Giuse,Le,Binh",
		",Phero,Vo,Cuong",
		"2,Têrêsa Calcutta,Trần Di,An",
		"3,Anna",
		"4,,,",
	}, "\n")

	rd, err := NewReader(strings.NewReader(in), ColumnsAt(0))
	require.NoError(t, err)
	rows, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)

	included, skipped := Count(rows)
	assert.Equal(t, 2, included)
	assert.Equal(t, 4, skipped)

	assert.Equal(t, ReasonNotNumbered, rows[1].Reason)
	assert.Equal(t, ReasonNotNumbered, rows[2].Reason)
	assert.Equal(t, ReasonShortRow, rows[4].Reason)
	assert.Equal(t, ReasonEmptyName, rows[5].Reason)

	recs := Included(rows)
	require.Len(t, recs, 2)
	assert.Equal(t, "Maria Tran An", recs[0].FullName)
	assert.Equal(t, "Têrêsa Calcutta Trần Di An", recs[1].FullName)
	assert.Equal(t, "Têrêsa Calcutta", recs[1].Honorific)
	assert.Equal(t, 5, rows[3].Line)
}

func TestReaderNoteColumn(t *testing.T) {
	in := "Ghi chú,STT,Tên Thánh,Họ,Tên\n" +
		"06/08/2019,1,Maria,Tran,An\n" +
		"chuyển lớp,2,Maria,Tran,An\n"

	rd, err := NewReader(strings.NewReader(in), ColumnsAt(1))
	require.NoError(t, err)
	rows, err := rd.ReadAll()
	require.NoError(t, err)

	recs := Included(rows)
	require.Len(t, recs, 2)
	assert.Equal(t, "06/08/2019", recs[0].Note)
	assert.Equal(t, "", recs[1].Note)
	assert.Equal(t, "Maria Tran An", recs[1].FullName)
}

func TestReaderMalformed(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), ColumnsAt(0))
	assert.True(t, errors.Is(err, ErrMalformedInput))

	rd, err := NewReader(io.MultiReader(strings.NewReader("a,b,c,d\n"), iotest.ErrReader(errors.New("disk gone"))), ColumnsAt(0))
	require.NoError(t, err)
	_, err = rd.ReadAll()
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestReaderStrayQuote(t *testing.T) {
	in := "STT,A,B,C\n" +
		"1,Maria,Tran,An\n" +
		"2,Giuse,Le \"Bin\",Binh\n" +
		"3,Phero,Vo,Cuong\n"

	rd, err := NewReader(strings.NewReader(in), ColumnsAt(0))
	require.NoError(t, err)
	rows, err := rd.ReadAll()
	require.NoError(t, err)

	recs := Included(rows)
	require.Len(t, recs, 3)
	assert.Equal(t, `Giuse Le "Bin" Binh`, recs[1].FullName)
	assert.Equal(t, "Phero Vo Cuong", recs[2].FullName)
}

func TestReaderUnterminatedQuote(t *testing.T) {
	rd, err := NewReader(strings.NewReader("a,b,c,d\n1,\"Maria,Tran,An\n"), ColumnsAt(0))
	require.NoError(t, err)
	rows, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Skipped, rows[0].Outcome)
	assert.Equal(t, ReasonShortRow, rows[0].Reason)
}

func TestReaderInvalidUTF8RowSkipped(t *testing.T) {
	in := "a,b,c,d\n1,Maria,\xff,An\n2,Giuse,Le,Binh\n"
	rd, err := NewReader(strings.NewReader(in), ColumnsAt(0))
	require.NoError(t, err)
	rows, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Skipped, rows[0].Outcome)
	assert.Equal(t, ReasonMalformedRow, rows[0].Reason)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, Included, rows[1].Outcome)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c1.csv")
	require.NoError(t, os.WriteFile(path, []byte("STT,A,B,C\n1,Maria,Tran,An\n"), 0o644))

	rows, err := LoadFile(path, ColumnsAt(0))
	require.NoError(t, err)
	assert.Len(t, Included(rows), 1)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"), ColumnsAt(0))
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestOutcomeText(t *testing.T) {
	b, err := Skipped.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "skipped", string(b))
	assert.Equal(t, "included", Included.String())
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord(" 7 ", "Têrêsa Calcutta", " Trần  Di ", "An", "not a date")
	assert.Equal(t, "7", rec.Sequence)
	assert.Equal(t, "Têrêsa Calcutta", rec.Honorific)
	assert.Equal(t, "Trần Di", rec.Family)
	assert.Equal(t, "", rec.Note)
	assert.Equal(t, "Têrêsa Calcutta Trần Di An", rec.FullName)
}
