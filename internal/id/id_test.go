package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("draft")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{"draft", "sse", "lead"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, prefix+"-"))
			assert.Len(t, strings.TrimPrefix(id, prefix+"-"), 21)
		})
	}
}

func TestMustGenerate_Format(t *testing.T) {
	id := MustGenerate("test")

	assert.True(t, strings.HasPrefix(id, "test-"))
	assert.Equal(t, len("test")+1+21, len(id))
}

func TestShort_Format(t *testing.T) {
	id, err := Short("")
	require.NoError(t, err)
	require.Len(t, id, shortLength)

	for _, char := range id {
		assert.True(t, strings.ContainsRune(base36, char), "unexpected character %c", char)
	}

	prefixed, err := Short("prod")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prefixed, "prod-"))
	assert.Len(t, prefixed, len("prod-")+shortLength)
}

func TestShort_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id, err := Short("")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}
}

func BenchmarkGenerate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Generate("bench")
	}
}
