package tokenizer

import (
	"testing"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffline() *Tiktoken {
	return NewTiktoken(Options{Offline: true})
}

func TestGetEncodingCl100k(t *testing.T) {
	lib := newOffline()
	enc, err := lib.GetEncoding("cl100k_base")
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", enc.Name())

	// "hello" and " world" are single tokens in cl100k_base.
	assert.Equal(t, 2, Count(enc, "hello world"))
	assert.Equal(t, 0, Count(enc, ""))
}

func TestGetEncodingCached(t *testing.T) {
	lib := newOffline()
	a, err := lib.GetEncoding("cl100k_base")
	require.NoError(t, err)
	b, err := lib.GetEncoding("cl100k_base")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestGetEncodingUnknown(t *testing.T) {
	lib := newOffline()
	_, err := lib.GetEncoding("not_an_encoding")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.Lookup)
	assert.Contains(t, err.Error(), "not_an_encoding")
}

func TestEncodingForModelNative(t *testing.T) {
	lib := newOffline()
	enc, err := lib.EncodingForModel("gpt-4")
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", enc.Name())

	enc, err = lib.EncodingForModel("gpt-3.5-turbo")
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", enc.Name())
}

func TestEncodingForModelIsCaseSensitive(t *testing.T) {
	lib := newOffline()
	_, err := lib.EncodingForModel("GPT-4")
	assert.ErrorIs(t, err, apperr.Lookup)
}

func TestNativeEncodingNamePrefix(t *testing.T) {
	name, ok := NativeEncodingName("gpt-4-0613")
	require.True(t, ok)
	assert.Equal(t, "cl100k_base", name)

	_, ok = NativeEncodingName("my-private-model")
	assert.False(t, ok)
}

func TestEncodeDeterministic(t *testing.T) {
	lib := newOffline()
	enc, err := lib.GetEncoding("cl100k_base")
	require.NoError(t, err)

	text := "The quick brown fox jumps over the lazy dog. 鍛錬"
	first := enc.Encode(text)
	second := enc.Encode(text)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestKnownEncodings(t *testing.T) {
	names := KnownEncodings()
	assert.Contains(t, names, "cl100k_base")
	assert.Contains(t, names, "r50k_base")
	assert.Len(t, names, 5)
}
