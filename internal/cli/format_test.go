package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/accountant/internal/model"
)

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		symbol string
		want   string
		value  float64
	}{
		{name: "turkish grouping", locale: "tr", symbol: "₺", value: 1234.5, want: "₺1.234,50"},
		{name: "turkish small", locale: "tr", symbol: "₺", value: 12, want: "₺12,00"},
		{name: "turkish negative", locale: "tr", symbol: "₺", value: -12, want: "-₺12,00"},
		{name: "negative zero", locale: "tr", symbol: "₺", value: -0.001, want: "₺0,00"},
		{name: "us english", locale: "en-US", symbol: "$", value: 1234.5, want: "$1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.locale, tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Format(tt.value))
		})
	}
}

func TestMoney_Signed(t *testing.T) {
	m := DefaultMoney()
	assert.Equal(t, "+₺100,00", m.Signed(model.TypeIncome, 100))
	assert.Equal(t, "-₺12,50", m.Signed(model.TypeExpense, 12.5))
}

func TestNewMoney_InvalidLocale(t *testing.T) {
	_, err := NewMoney("not a locale!", "₺")
	assert.Error(t, err)
}

func TestNewMoney_EmptyLocaleDefaults(t *testing.T) {
	m, err := NewMoney("", "₺")
	require.NoError(t, err)
	assert.Equal(t, "₺1.000,00", m.Format(1000))
}
