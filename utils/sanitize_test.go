package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHeaderFilename(t *testing.T) {
	assert.Equal(t, "model.zip", SanitizeHeaderFilename("model.zip"))
	assert.Equal(t, "download", SanitizeHeaderFilename("   "))
	assert.Equal(t, "ab", SanitizeHeaderFilename("a\r\nb"))
	assert.Equal(t, "quoted", SanitizeHeaderFilename(`"quoted"`))
}
