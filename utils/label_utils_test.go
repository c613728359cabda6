package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIdentifier(t *testing.T) {
	assert.Equal(t, "DC00000042", FormatIdentifier(42, "DC", 8))
	assert.Equal(t, "DC123456789", FormatIdentifier(123456789, "DC", 8)) // 超宽不截断
	assert.Equal(t, "007", FormatIdentifier(7, "", 3))
}

func TestParseIdentifier(t *testing.T) {
	value, err := ParseIdentifier("DC00000042", "DC")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// 前缀大小写不敏感
	value, err = ParseIdentifier("dc00000042", "DC")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// 不带前缀的裸数字
	value, err = ParseIdentifier("42", "DC")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// 首尾空白
	value, err = ParseIdentifier("  DC00000007  ", "DC")
	require.NoError(t, err)
	assert.Equal(t, int64(7), value)
}

func TestParseIdentifierRoundTrip(t *testing.T) {
	for _, v := range []int64{1, 42, 99999999, 100000000} {
		parsed, err := ParseIdentifier(FormatIdentifier(v, "DC", 8), "DC")
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}

func TestParseIdentifierInvalid(t *testing.T) {
	for _, label := range []string{"", "DC", "DC0", "0", "-5", "DCabc", "abc"} {
		_, err := ParseIdentifier(label, "DC")
		assert.ErrorIs(t, err, ErrInvalidLabel, "label=%q", label)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret", "not-a-hash"))
}
