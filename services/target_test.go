package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseTargetAll checks that the literal "all" selects every contact.
func TestParseTargetAll(t *testing.T) {
	target, err := ParseTarget(json.RawMessage(`"all"`))
	assert.NoError(t, err)
	assert.Equal(t, TargetAll, target.Kind)
	assert.Equal(t, "all", target.Criterion())
}

// TestParseTargetProfession checks the profession:<value> form.
func TestParseTargetProfession(t *testing.T) {
	target, err := ParseTarget(json.RawMessage(`"profession:student"`))
	assert.NoError(t, err)
	assert.Equal(t, TargetProfession, target.Kind)
	assert.Equal(t, "student", target.Profession)
	assert.Equal(t, "student", target.Criterion())
}

// TestParseTargetProfessionWithColon checks that only the first colon splits:
// a profession value containing a colon survives intact.
func TestParseTargetProfessionWithColon(t *testing.T) {
	target, err := ParseTarget(json.RawMessage(`"profession:DJ: Resident"`))
	assert.NoError(t, err)
	assert.Equal(t, TargetProfession, target.Kind)
	assert.Equal(t, "DJ: Resident", target.Profession)
}

// TestParseTargetSingleAddress checks that a plain address becomes a
// one-element explicit list.
func TestParseTargetSingleAddress(t *testing.T) {
	target, err := ParseTarget(json.RawMessage(`"test@example.com"`))
	assert.NoError(t, err)
	assert.Equal(t, TargetExplicit, target.Kind)
	assert.Equal(t, []string{"test@example.com"}, target.Addresses)
	assert.Equal(t, "all", target.Criterion())
}

// TestParseTargetAddressList checks the array form.
func TestParseTargetAddressList(t *testing.T) {
	target, err := ParseTarget(json.RawMessage(`["a@x.com", "b@x.com"]`))
	assert.NoError(t, err)
	assert.Equal(t, TargetExplicit, target.Kind)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, target.Addresses)
}

// TestParseTargetInvalid checks rejection of empty and malformed inputs.
func TestParseTargetInvalid(t *testing.T) {
	for _, raw := range []string{``, `""`, `[]`, `42`, `{"kind":"all"}`} {
		_, err := ParseTarget(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrInvalidTarget, "input %q", raw)
	}
}
