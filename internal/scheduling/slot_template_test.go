package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotTemplate_KeepsTemplateOrder(t *testing.T) {
	slots, skipped, err := ParseSlotTemplate([]byte(`["14:00", "9:00 AM", "bogus", "10:30:00", "09:00"]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"14:00:00", "09:00:00", "10:30:00"}, slots)
	assert.Equal(t, []string{"bogus"}, skipped)
}

func TestParseSlotTemplate_Malformed(t *testing.T) {
	for _, raw := range []string{``, `not json`, `{"a": "09:00"}`, `"09:00"`, `[9, 10]`} {
		_, _, err := ParseSlotTemplate([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformedSlotTemplate, raw)
	}
}

func TestParseSlotTemplate_NoUsableSlots(t *testing.T) {
	_, skipped, err := ParseSlotTemplate([]byte(`["soon", "later"]`))
	assert.ErrorIs(t, err, ErrNoUsableSlots)
	assert.Len(t, skipped, 2)

	_, _, err = ParseSlotTemplate([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNoUsableSlots)
}
