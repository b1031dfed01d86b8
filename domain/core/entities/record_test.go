package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodeRecord(t *testing.T) {
	record, err := ParseNodeRecord(map[string]interface{}{
		"id":   "n1",
		"type": "llm",
		"data": map[string]interface{}{"model": "gpt"},
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", record.ID().String())
	assert.Equal(t, "llm", record.Attrs()["type"])
}

func TestParseNodeRecordNumericID(t *testing.T) {
	record, err := ParseNodeRecord(map[string]interface{}{"id": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, "7", record.ID().String())
}

func TestParseNodeRecordErrors(t *testing.T) {
	_, err := ParseNodeRecord("just-a-string")
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = ParseNodeRecord([]interface{}{"a"})
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = ParseNodeRecord(map[string]interface{}{"type": "input"})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = ParseNodeRecord(map[string]interface{}{"id": ""})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestParseEdgeRecord(t *testing.T) {
	record, err := ParseEdgeRecord(map[string]interface{}{
		"source":       "a",
		"target":       "b",
		"sourceHandle": "out",
	})
	require.NoError(t, err)
	assert.Equal(t, "a", record.Source().String())
	assert.Equal(t, "b", record.Target().String())
	assert.Equal(t, "out", record.Attrs()["sourceHandle"])
}

func TestParseEdgeRecordErrors(t *testing.T) {
	_, err := ParseEdgeRecord(42.0)
	assert.ErrorIs(t, err, ErrNotRecord)

	_, err = ParseEdgeRecord(map[string]interface{}{"target": "b"})
	assert.ErrorIs(t, err, ErrMissingSource)

	_, err = ParseEdgeRecord(map[string]interface{}{"source": "a"})
	assert.ErrorIs(t, err, ErrMissingTarget)

	_, err = ParseEdgeRecord(map[string]interface{}{"source": "a", "target": ""})
	assert.ErrorIs(t, err, ErrMissingTarget)
}
