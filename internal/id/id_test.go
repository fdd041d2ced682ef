package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for range 1000 {
		v, err := Generate(PrefixPalette)
		require.NoError(t, err)
		assert.False(t, ids[v], "ID should be unique: %s", v)
		ids[v] = true
	}
	assert.Len(t, ids, 1000)
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{PrefixUser, PrefixSession, PrefixPalette} {
		t.Run(prefix, func(t *testing.T) {
			v, err := Generate(prefix)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(v, prefix+"-"))
			assert.Len(t, v, len(prefix)+1+21)
			assert.True(t, HasPrefix(v, prefix))
		})
	}
}

func TestHasPrefix(t *testing.T) {
	assert.False(t, HasPrefix("pal-", PrefixPalette))
	assert.False(t, HasPrefix("user-abc", PrefixPalette))
	assert.True(t, HasPrefix("pal-abc", PrefixPalette))
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, HasPrefix(MustGenerate(PrefixUser), PrefixUser))
	})
}
