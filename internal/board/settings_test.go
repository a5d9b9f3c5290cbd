package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedDefaults(t *testing.T) {
	s := Settings{}.Normalized()

	assert.Equal(t, LayoutGrid, s.Layout)
	assert.Equal(t, 3, s.Columns)
	assert.Equal(t, 30, s.CacheTTLMinutes)
	assert.NotEmpty(t, s.EmptyMessage)
	assert.NotEmpty(t, s.ButtonText)
	assert.Equal(t, []string{FieldLocation, FieldArea}, s.ClientFilterFields)
}

func TestNormalizedKeepsValidValues(t *testing.T) {
	s := Settings{Layout: LayoutAccordion, Columns: 4, CacheTTLMinutes: 5, ButtonText: "Aplicar"}.Normalized()

	assert.Equal(t, LayoutAccordion, s.Layout)
	assert.Equal(t, 4, s.Columns)
	assert.Equal(t, 5, s.CacheTTLMinutes)
	assert.Equal(t, "Aplicar", s.ButtonText)
}

func TestNormalizedRejectsBadValues(t *testing.T) {
	s := Settings{Layout: "carousel", Columns: 9, CacheTTLMinutes: -1}.Normalized()

	assert.Equal(t, LayoutGrid, s.Layout)
	assert.Equal(t, 3, s.Columns)
	assert.Equal(t, 30, s.CacheTTLMinutes)
}

func TestHasClientFilterField(t *testing.T) {
	s := Settings{ClientFilterFields: []string{FieldLocation}}
	assert.True(t, s.HasClientFilterField(FieldLocation))
	assert.False(t, s.HasClientFilterField(FieldArea))
}
