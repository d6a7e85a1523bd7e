package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCapabilitySetTrueAndObjectEnable(t *testing.T) {
	raw := map[string]json.RawMessage{
		capDefinition: json.RawMessage("true"),
		capRename:     json.RawMessage(`{"prepareProvider":true}`),
	}
	cs := newCapabilitySet(raw)
	assert.True(t, cs.has(capDefinition))
	assert.True(t, cs.has(capRename), "an options object should enable the capability")
}

func TestNewCapabilitySetFalseDisables(t *testing.T) {
	raw := map[string]json.RawMessage{
		capCodeAction: json.RawMessage("false"),
	}
	cs := newCapabilitySet(raw)
	assert.False(t, cs.has(capCodeAction))
}

func TestCapabilitySetMissingKeyIsUnsupported(t *testing.T) {
	cs := newCapabilitySet(map[string]json.RawMessage{})
	assert.False(t, cs.has(capHover))
}
