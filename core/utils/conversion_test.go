package utils_test

import (
	"testing"

	"path-store/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "hello", utils.ToString("hello"))
	assert.Equal(t, "hello", utils.ToString([]byte("hello")))
	// JSON numbers decode as float64; integral values render without exponent.
	assert.Equal(t, "1048576", utils.ToString(float64(1048576)))
	assert.Equal(t, "1.5", utils.ToString(1.5))
	assert.Equal(t, "42", utils.ToString(42))
	assert.Equal(t, "true", utils.ToString(true))
}
