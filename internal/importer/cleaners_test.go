package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBRLNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"1.234,56", 1234.56},
		{"1.250.000,00", 1250000.00},
		{"150,75", 150.75},
		{"0,00", 0},
		{"", 0},
		{"-", 0},
		{"abc", 0},
		{"-1.500,25", -1500.25},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBRLNumber(tt.input))
		})
	}
}

func TestParsePercent(t *testing.T) {
	v := ParsePercent("9,75%")
	require.NotNil(t, v)
	assert.Equal(t, 9.75, *v)

	v = ParsePercent("12,5")
	require.NotNil(t, v)
	assert.Equal(t, 12.5, *v)

	assert.Nil(t, ParsePercent(""))
	assert.Nil(t, ParsePercent("-"))
	assert.Nil(t, ParsePercent("n/a"))
}

func TestParseDateBR(t *testing.T) {
	d := ParseDateBR("05/03/2025")
	require.NotNil(t, d)
	assert.Equal(t, "2025-03-05", d.Format("2006-01-02"))

	assert.Nil(t, ParseDateBR(""))
	assert.Nil(t, ParseDateBR("2025-03-05"))
	assert.Nil(t, ParseDateBR("31/02/2025"))
}

func TestParseInstallment(t *testing.T) {
	current, total := ParseInstallment("(3/12)")
	assert.Equal(t, 3, current)
	assert.Equal(t, 12, total)

	current, total = ParseInstallment("7/24")
	assert.Equal(t, 7, current)
	assert.Equal(t, 24, total)

	// anything that does not match defaults to a single installment
	current, total = ParseInstallment("única")
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total)

	current, total = ParseInstallment("")
	assert.Equal(t, 1, current)
	assert.Equal(t, 1, total)
}
