package valueobjects

import (
	"encoding/json"
	"errors"
	"strconv"
)

// NodeID is a value object representing a unique node identifier within one
// pipeline request. Value objects are immutable and have no identity beyond
// their value.
type NodeID struct {
	value string
}

// NewNodeID creates a NodeID from an existing string
func NewNodeID(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	return NodeID{value: id}, nil
}

// CoerceNodeID converts a loosely-typed identifier value into a NodeID.
// JSON payloads may carry identifiers as strings, numbers, or booleans;
// scalar values are coerced to their string representation. Composite or
// absent values are not valid identifiers.
func CoerceNodeID(raw interface{}) (NodeID, error) {
	switch v := raw.(type) {
	case string:
		return NewNodeID(v)
	case float64:
		// encoding/json decodes all JSON numbers as float64
		return NewNodeID(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return NewNodeID(strconv.Itoa(v))
	case int64:
		return NewNodeID(strconv.FormatInt(v, 10))
	case bool:
		return NewNodeID(strconv.FormatBool(v))
	case nil:
		return NodeID{}, errors.New("node ID cannot be empty")
	default:
		return NodeID{}, errors.New("node ID must be a scalar value")
	}
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler. Identifiers are arbitrary client
// strings, so quoting and escaping are delegated to encoding/json.
func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.New("NodeID must be a string")
	}
	id.value = value
	return nil
}
