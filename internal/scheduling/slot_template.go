package scheduling

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedSlotTemplate means available_slots is not a JSON array of strings.
	ErrMalformedSlotTemplate = errors.New("malformed slot template")
	// ErrNoUsableSlots means every template entry failed normalization.
	ErrNoUsableSlots = errors.New("slot template has no usable slots")
)

// ParseSlotTemplate decodes a doctor's slot template and normalizes every
// entry, keeping template order. Entries that fail normalization are
// returned in skipped; they never abort the parse on their own.
func ParseSlotTemplate(raw []byte) (slots []string, skipped []string, err error) {
	var entries []string
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: empty", ErrMalformedSlotTemplate)
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedSlotTemplate, err)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		slot, err := Normalize(entry)
		if err != nil {
			skipped = append(skipped, entry)
			continue
		}
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return nil, skipped, ErrNoUsableSlots
	}
	return slots, skipped, nil
}
