package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_FormatDate(t *testing.T) {
	f := NewDefault()

	assert.Equal(t, "05.03.2024", f.FormatDate(time.Date(2024, time.March, 5, 13, 30, 0, 0, time.UTC)))
	assert.Empty(t, f.FormatDate(time.Time{}))
}

func TestDefault_ParseDate(t *testing.T) {
	f := NewDefault()

	got, err := f.ParseDate(" 31.12.2023 ")
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 31, got.Day())

	_, err = f.ParseDate("2023-12-31")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "2023-12-31")
}

func TestDefault_FormatNumber(t *testing.T) {
	f := NewDefault()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{1234567.5, "1234567,50"},
		{12.345678, "12,35"},
		{-3.1, "-3,10"},
		{42, "42,00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.FormatNumber(tt.in))
	}
}

func TestDefault_ZeroValueUsesDefaults(t *testing.T) {
	var f Default
	assert.Equal(t, "01.02.2020", f.FormatDate(time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "7", f.FormatNumber(7), "zero Decimals means integer output")
}
