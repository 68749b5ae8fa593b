package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashenlab/paramforge/pkg/codec"
)

func TestParseValue(t *testing.T) {
	v, err := parseValue("u16", "attackBase", 0, "120")
	require.NoError(t, err)
	assert.Equal(t, int64(120), v.Int())

	v, err = parseValue("f32", "weight", 0, "4.5")
	require.NoError(t, err)
	assert.Equal(t, 4.5, v.Float())

	v, err = parseValue("fixstr", "label", 0, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v.Text())

	v, err = parseValue("u8", "rarity", 4, "7")
	require.NoError(t, err)
	assert.Equal(t, codec.IntValue(7), v)

	_, err = parseValue("u16", "attackBase", 0, "abc")
	assert.Error(t, err)

	_, err = parseValue("nosuchtype", "field", 0, "1")
	assert.Error(t, err)

	_, err = parseValue("dummy8", "pad0", 0, "0")
	assert.Error(t, err)
}
