package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeText(t *testing.T) {
	assert.Equal(t, "shares rose after earnings", SafeText("  shares\trose\n\nafter \x00earnings "))
	assert.Equal(t, "", SafeText("   "))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"reuters.com", "WSJ.com"}, "wsj.com"))
	assert.False(t, ContainsString(nil, "wsj.com"))
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", FormatDate(AddDays(d, 14)))

	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
