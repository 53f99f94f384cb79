// Package export renders report payloads into downloadable documents.
// CSV, JSON and XML are generated for real; Excel and PDF remain mocked,
// matching the dashboard's current behavior.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Supported target formats
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatXML   = "xml"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ErrUnsupportedFormat is returned for unknown target formats
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Generate renders the payload in the requested format and returns the
// document bytes with their content type. The payload is the JSON the
// report endpoint produced: an array of flat objects for tabular formats.
func Generate(reportType, format string, payload json.RawMessage) ([]byte, string, error) {
	switch format {
	case FormatJSON:
		var out bytes.Buffer
		if err := json.Indent(&out, payload, "", "  "); err != nil {
			return nil, "", fmt.Errorf("invalid payload: %w", err)
		}
		return out.Bytes(), "application/json", nil
	case FormatCSV:
		data, err := renderCSV(payload)
		return data, "text/csv", err
	case FormatXML:
		data, err := renderXML(reportType, payload)
		return data, "application/xml", err
	case FormatExcel:
		// placeholder document, generation is mocked
		body := fmt.Sprintf("%s report - Excel generation pending\n", reportType)
		return []byte(body), "application/vnd.ms-excel", nil
	case FormatPDF:
		body := fmt.Sprintf("%s report - PDF generation pending\n", reportType)
		return []byte(body), "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// decodeRows expects an array of flat objects
func decodeRows(payload json.RawMessage) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("payload must be an array of objects: %w", err)
	}
	return rows, nil
}

// columns returns the union of keys across rows, sorted for a stable layout
func columns(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; keep integers clean
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprint(val)
	}
}

func renderCSV(payload json.RawMessage) ([]byte, error) {
	rows, err := decodeRows(payload)
	if err != nil {
		return nil, err
	}
	cols := columns(rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = formatValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXML(reportType string, payload json.RawMessage) ([]byte, error) {
	rows, err := decodeRows(payload)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("report")
	root.CreateAttr("type", reportType)
	root.CreateAttr("generated_at", time.Now().Format(time.RFC3339))

	for _, row := range rows {
		el := root.CreateElement("row")
		for _, col := range columns([]map[string]interface{}{row}) {
			child := el.CreateElement(elementName(col))
			child.SetText(formatValue(row[col]))
		}
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize xml: %w", err)
	}
	return data, nil
}

// elementName makes a JSON key usable as an XML element name
func elementName(key string) string {
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	if key == "" || key[0] >= '0' && key[0] <= '9' {
		key = "_" + key
	}
	return key
}
