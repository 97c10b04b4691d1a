package portal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFindProfileIDNestedObject(t *testing.T) {
	id, ok := FindProfileID(decode(t, `{"data":{"id":42}}`))
	require.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestFindProfileIDArrayFirstElement(t *testing.T) {
	id, ok := FindProfileID(decode(t, `[{"id":"abc"},{"id":"zzz"}]`))
	require.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestFindProfileIDWrappedArray(t *testing.T) {
	id, ok := FindProfileID(decode(t, `{"result":{"profiles":[{"id":7,"role":"student"}]}}`))
	require.True(t, ok)
	assert.Equal(t, "7", id)
}

func TestFindProfileIDOwnField(t *testing.T) {
	id, ok := FindProfileID(decode(t, `{"id":"me","name":"alice"}`))
	require.True(t, ok)
	assert.Equal(t, "me", id)
}

func TestFindProfileIDAbsent(t *testing.T) {
	for _, raw := range []string{`{}`, `[]`, `"string"`, `17`, `null`, `{"id":true}`} {
		_, ok := FindProfileID(decode(t, raw))
		assert.False(t, ok, "expected no id for %s", raw)
	}
}

func TestFindProfileIDDeterministic(t *testing.T) {
	// Several candidate subtrees: sorted key order makes the result
	// stable across runs.
	raw := `{"b":{"id":2},"a":{"id":1}}`
	for i := 0; i < 10; i++ {
		id, ok := FindProfileID(decode(t, raw))
		require.True(t, ok)
		assert.Equal(t, "1", id)
	}
}
