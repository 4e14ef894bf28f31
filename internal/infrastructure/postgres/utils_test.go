package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Las columnas opcionales (barcode, tax_id, notes) son nullable en el esquema:
// el string vacío se persiste como NULL, nunca como ''.
func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))

	got := nullIfEmpty("7701234567890")
	require.NotNil(t, got)
	assert.Equal(t, "7701234567890", *got)
}
