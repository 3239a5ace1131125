package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInput(t *testing.T) {
	got, err := ParseDateInput("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 31, got.Day())
	assert.Equal(t, 0, got.Hour())

	_, err = ParseDateInput("31/08/2026")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2026-01-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Day())
}
