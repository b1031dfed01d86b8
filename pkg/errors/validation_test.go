package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *PipelineValidationError
		want string
	}{
		{"malformed node", NewMalformedNodeError(2), `node at index 2 is not a structured record`},
		{"missing node id", NewMissingNodeIDError(0), `node at index 0 has no non-empty id`},
		{"duplicate node id", NewDuplicateNodeIDError(3, "a"), `node at index 3 reuses id "a"`},
		{"malformed edge", NewMalformedEdgeError(1), `edge at index 1 is not a structured record`},
		{"missing source", NewMissingEndpointError(4, EndpointSource), `edge at index 4 has no non-empty source`},
		{"missing target", NewMissingEndpointError(4, EndpointTarget), `edge at index 4 has no non-empty target`},
		{"unknown endpoint", NewUnknownEndpointError(5, "ghost"), `edge at index 5 references unknown node "ghost"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationErrorIsMatchesByKind(t *testing.T) {
	err := NewDuplicateNodeIDError(1, "a")

	assert.True(t, Is(err, &PipelineValidationError{Kind: KindDuplicateNodeID}))
	assert.False(t, Is(err, &PipelineValidationError{Kind: KindMissingNodeID}))
}

func TestValidationErrorDetails(t *testing.T) {
	details := NewUnknownEndpointError(7, "ghost").Details()

	assert.Equal(t, string(KindUnknownEndpoint), details["kind"])
	assert.Equal(t, 7, details["index"])
	assert.Equal(t, "ghost", details["endpoint"])
	assert.NotContains(t, details, "node_id")
	assert.NotContains(t, details, "which")
}

func TestGetValidationErrorUnwrapsChains(t *testing.T) {
	inner := NewMalformedEdgeError(0)
	wrapped := fmt.Errorf("building pipeline: %w", inner)

	got := GetValidationError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, KindMalformedEdge, got.Kind)

	assert.Nil(t, GetValidationError(fmt.Errorf("plain failure")))
}

func TestIsValidationCoversBothTaxonomies(t *testing.T) {
	assert.True(t, IsValidation(NewMissingNodeIDError(0)))
	assert.True(t, IsValidation(NewValidationError("bad input")))
	assert.False(t, IsValidation(fmt.Errorf("boom")))
}
