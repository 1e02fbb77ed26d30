package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	e := New(TypeChatRejected, map[string]interface{}{"error_type": "manipulation"})

	raw, err := Marshal(e)
	require.NoError(t, err)

	got, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeChatRejected, got.EventType())
	assert.Equal(t, "manipulation", got.Payload()["error_type"])
	assert.True(t, e.Timestamp().Equal(got.Timestamp()))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("{"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"data":{}}`))
	assert.Error(t, err)
}
