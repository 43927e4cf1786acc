package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Header: []string{"ID", "Name", "Website", "Begin Date", "End Date"},
		Rows: [][]string{
			{"2", "Test Conference 2", "https://example.com/2", "2026-09-01", "2026-09-03"},
			{"1", "Test Conference 1", "https://example.com/1", "2026-08-01", "2026-08-01"},
		},
	}
}

func TestRenderCSVKeepsHeaderAndRowOrder(t *testing.T) {
	data, filename, contentType, err := Render(FormatCSV, "conferences", sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "conferences_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Website,Begin Date,End Date", lines[0])
	assert.Contains(t, lines[1], "Test Conference 2")
	assert.Contains(t, lines[2], "Test Conference 1")
}

func TestRenderCSVQuotesEmbeddedSeparators(t *testing.T) {
	table := Table{
		Header: []string{"Key", "Value"},
		Rows:   [][]string{{"greeting", `hello, "world"`}},
	}
	data, _, _, err := Render(FormatCSV, "configuration", table)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hello, ""world"""`)
}

func TestRenderExcelAndPDFProduceData(t *testing.T) {
	for _, format := range []Format{FormatExcel, FormatPDF} {
		data, filename, contentType, err := Render(format, "conferences", sampleTable())
		require.NoError(t, err, format)
		assert.NotEmpty(t, data, format)
		assert.NotEmpty(t, filename, format)
		assert.NotEmpty(t, contentType, format)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, _, _, err := Render(Format("docx"), "conferences", sampleTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
