package csvimport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/japanese"

	"github.com/letterpack/letterpack/internal/model"
)

const header = "to_postal,to_address1,to_name,from_postal,from_address1,from_name"

func TestParseValid(t *testing.T) {
	data := header + ",to_phone,from_honorific\n" +
		"123-4567,東京都渋谷区1-2-3,山田 太郎,987-6543,大阪府大阪市4-5-6,田中 花子,03-1234-5678,\n" +
		"\n" +
		"111-2222,京都府京都市7-8-9,佐藤 次郎,555-6666,福岡県福岡市10-11-12,鈴木 美咲,,御中\n"

	res, err := NewParser().Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Pairs, 2)

	first := res.Pairs[0]
	assert.Equal(t, "123-4567", first.To.PostalCode)
	assert.Equal(t, "03-1234-5678", first.To.Phone)
	assert.Equal(t, model.DefaultHonorific, first.To.Honorific)
	assert.Empty(t, first.From.Honorific)

	assert.Equal(t, "御中", res.Pairs[1].From.Honorific)
	assert.False(t, res.Pairs[1].To.HasPhone())
	assert.Empty(t, res.UnknownColumns)
}

func TestParseBOMAndAliases(t *testing.T) {
	data := "\xEF\xBB\xBFto_postal,to_address,to_name,from_postal,from_address,from_name\n" +
		"1234567,A,B,7654321,C,D\n"

	res, err := NewParser(WithDefaultHonorific(false)).ParseBytes([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, "A", res.Pairs[0].To.Address1)
	assert.Equal(t, "C", res.Pairs[0].From.Address1)
	assert.Empty(t, res.Pairs[0].To.Honorific)
}

func TestParseShiftJIS(t *testing.T) {
	utf8Data := header + "\n123-4567,東京都千代田区,山田,987-6543,大阪府,田中\n"
	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(utf8Data))
	require.NoError(t, err)

	res, err := NewParser().ParseBytes(sjis)
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)
	assert.Equal(t, "東京都千代田区", res.Pairs[0].To.Address1)
	assert.Equal(t, "田中", res.Pairs[0].From.Name)
}

func TestParseUnknownColumnsWarn(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	data := header + ",memo\n1234567,A,B,7654321,C,D,note\n"

	res, err := NewParser(WithLogger(zap.New(core))).ParseBytes([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"memo"}, res.UnknownColumns)
	assert.Equal(t, 1, recorded.FilterMessage("Ignoring unknown CSV columns").Len())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrEmptyFile},
		{"only BOM and whitespace", "\xEF\xBB\xBF \n", ErrEmptyFile},
		{"header only", header + "\n", ErrNoDataRows},
		{"blank rows only", header + "\n,,,,,\n", ErrNoDataRows},
		{"invalid encoding", "\xff\xfe\xfd", ErrInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseBytes([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseMissingColumns(t *testing.T) {
	_, err := NewParser().ParseBytes([]byte("to_postal,to_name,from_name\n1,2,3\n"))

	var mcErr *MissingColumnsError
	require.ErrorAs(t, err, &mcErr)
	assert.Equal(t, []string{"to_address1", "from_postal", "from_address1"}, mcErr.Columns)
}

func TestParseCollectsEveryBadRow(t *testing.T) {
	data := header + "\n" +
		"1234567,A,B,7654321,C,D\n" +
		",A,B,7654321,C,D\n" +
		"1234567,A,B,7654321,C,\n"

	_, err := NewParser().ParseBytes([]byte(data))

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	require.Len(t, importErr.Rows, 2)

	assert.Equal(t, 3, importErr.Rows[0].Row)
	assert.Equal(t, model.SideTo, importErr.Rows[0].Side)
	assert.Equal(t, 4, importErr.Rows[1].Row)
	assert.Equal(t, model.SideFrom, importErr.Rows[1].Side)

	var verr *model.ValidationError
	require.ErrorAs(t, importErr.Rows[1], &verr)
	assert.Equal(t, []string{"name"}, verr.Fields)
	assert.Contains(t, err.Error(), "row 3 [to]")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\n1234567,A,B,7654321,C,D\n"), 0o600))

	res, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Pairs, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteSampleRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSample(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(Header, ",")+"\n"))

	res, err := NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, res.Pairs, 2)
	assert.Equal(t, "XXXビル4F", res.Pairs[0].To.Address2)
	assert.Equal(t, model.DefaultHonorific, res.Pairs[1].To.Honorific)
}
