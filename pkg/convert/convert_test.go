package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrTo(t *testing.T) {
	assert.Equal(t, 42, StrTo("42").MustInt())
	assert.Equal(t, int64(42), StrTo("42").MustInt64())
	assert.Equal(t, 0, StrTo("nope").MustInt())

	assert.True(t, StrTo("true").MustBool())
	assert.True(t, StrTo("1").MustBool())
	assert.False(t, StrTo("false").MustBool())
	assert.False(t, StrTo("").MustBool(), "absent query params read as false")

	_, err := StrTo("yes").Bool()
	assert.Error(t, err)
}
