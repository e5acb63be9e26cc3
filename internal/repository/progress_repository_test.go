package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 100, clampProgress(150))
	assert.Equal(t, 100, clampProgress(100))
	assert.Equal(t, 99, clampProgress(99))
	assert.Equal(t, 0, clampProgress(0))
	assert.Equal(t, 0, clampProgress(-10))
}
