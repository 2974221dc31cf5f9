package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogReturnsSharedInstance(t *testing.T) {
	first := GetLog()
	assert.NotNil(t, first)
	assert.Same(t, first, GetLog())
}

func TestSetLevel(t *testing.T) {
	assert.NoError(t, SetLevel("debug"))
	assert.NoError(t, SetLevel("INFO"))
	assert.Error(t, SetLevel("chatty"))
}
