package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityLevel_Rank(t *testing.T) {
	require.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	require.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
	require.Equal(t, -1, SeverityLevel("Critical").Rank())
}
