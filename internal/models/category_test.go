package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"SILVER", "GOLD", "PLATINUM"} {
		category, ok := ParseCategory(valid)
		require.True(t, ok, valid)
		require.Equal(t, Category(valid), category)
	}

	for _, invalid := range []string{"", "gold", "BRONZE", "DIAMOND", "Silver"} {
		_, ok := ParseCategory(invalid)
		require.False(t, ok, invalid)
	}
}
