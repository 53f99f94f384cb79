package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePayload = json.RawMessage(`[
	{"contract_number": "AGR-1", "institution": "Banco do Brasil", "amount_brl": 1234.5},
	{"contract_number": "AGR-2", "institution": "Rabobank", "amount_brl": 500}
]`)

func TestGenerateCSV(t *testing.T) {
	data, contentType, err := Generate("debt_position", FormatCSV, samplePayload)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "amount_brl,contract_number,institution", lines[0])
	assert.Equal(t, "1234.50,AGR-1,Banco do Brasil", lines[1])
	assert.Equal(t, "500,AGR-2,Rabobank", lines[2])
}

func TestGenerateJSON(t *testing.T) {
	data, contentType, err := Generate("debt_position", FormatJSON, samplePayload)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, 2)
}

func TestGenerateXMLWellFormed(t *testing.T) {
	data, contentType, err := Generate("cash_flow", FormatXML, samplePayload)
	require.NoError(t, err)
	assert.Equal(t, "application/xml", contentType)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "report", root.Tag)
	assert.Equal(t, "cash_flow", root.SelectAttrValue("type", ""))
	assert.Len(t, root.SelectElements("row"), 2)
}

func TestGenerateMockedFormats(t *testing.T) {
	for _, format := range []string{FormatExcel, FormatPDF} {
		data, _, err := Generate("debt_position", format, samplePayload)
		require.NoError(t, err)
		assert.Contains(t, string(data), "pending")
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, _, err := Generate("debt_position", "docx", samplePayload)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGenerateCSVRejectsNonTabularPayload(t *testing.T) {
	_, _, err := Generate("debt_position", FormatCSV, json.RawMessage(`{"not":"an array"}`))
	assert.Error(t, err)
}
