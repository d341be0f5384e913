package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilterState(t *testing.T) {
	f := DefaultFilterState()

	assert.Empty(t, f.Search)
	assert.Equal(t, "all", f.Status)
	assert.Equal(t, "all", f.Type)
	assert.Equal(t, "all", f.Category)
	assert.Equal(t, "all", f.Priority)
	assert.Equal(t, "latest", f.Sort)
}
