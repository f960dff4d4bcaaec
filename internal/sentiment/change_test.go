package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 0.0909, PercentChange(100, 110, DefaultFlatEpsilon), 1e-4)
	assert.InDelta(t, -0.1111, PercentChange(100, 90, DefaultFlatEpsilon), 1e-4)
	assert.Equal(t, DefaultFlatEpsilon, PercentChange(50, 50, DefaultFlatEpsilon))
	assert.Equal(t, 0.0, PercentChange(50, 0, DefaultFlatEpsilon))
}
