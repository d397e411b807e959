package loc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

const sampleCSV = `commit,file,type,line,depth,length,author,date,time,timezone,datetime
a,x.js,js,1,0,10,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
a,x.js,js,2,1,12,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
b,y.css,css,1,0,8,bob,2024-01-02,14:00:00,+00:00,2024-01-02T14:00:00+00:00
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	result, err := loc.ReadCSV(strings.NewReader(sampleCSV), loc.ReadOptions{})
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, "y.css", result.Rows[2].File)
}

func TestReadCSV_SkipsBadRows(t *testing.T) {
	t.Parallel()

	input := sampleCSV + "c,z.js,js,oops,0,1,cy,2024-01-03,10:00:00,+00:00,2024-01-03T10:00:00+00:00\n"

	result, err := loc.ReadCSV(strings.NewReader(input), loc.ReadOptions{})
	require.NoError(t, err)

	assert.Len(t, result.Rows, 3)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 5, result.Rejected[0].Line)
	assert.Equal(t, loc.ColLine, result.Rejected[0].Field)
}

func TestReadCSV_StrictAborts(t *testing.T) {
	t.Parallel()

	input := sampleCSV + "c,z.js,js,1,0,1,cy,2024-01-03,10:00:00,+00:00,not-a-date\n"

	_, err := loc.ReadCSV(strings.NewReader(input), loc.ReadOptions{Strict: true})
	require.Error(t, err)
	require.ErrorIs(t, err, loc.ErrBadTimestamp)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	_, err := loc.ReadCSV(strings.NewReader("commit,file,line\na,x.js,1\n"), loc.ReadOptions{})
	require.ErrorIs(t, err, loc.ErrMissingColumn)
}

func TestReadCSV_Empty(t *testing.T) {
	t.Parallel()

	result, err := loc.ReadCSV(strings.NewReader(""), loc.ReadOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

func TestReadCSV_ReorderedHeader(t *testing.T) {
	t.Parallel()

	input := "datetime,author,length,depth,line,file,commit\n" +
		"2024-01-01T09:00:00Z,ann,3,0,1,x.go,a\n"

	result, err := loc.ReadCSV(strings.NewReader(input), loc.ReadOptions{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "go", result.Rows[0].Type)
	assert.Equal(t, "a", result.Rows[0].Commit)
}
