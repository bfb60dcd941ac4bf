package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxDimensions(t *testing.T) {
	b := BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 70}
	require.Equal(t, 100.0, b.Width())
	require.Equal(t, 50.0, b.Height())
	require.Equal(t, 5000.0, b.Area())
}

func TestParseDefectType(t *testing.T) {
	require.Equal(t, DefectCrack, ParseDefectType("Crack"))
	require.Equal(t, DefectCorrosion, ParseDefectType(" corrosion "))
	require.Equal(t, DefectSpalling, ParseDefectType("SPALLING"))
	require.Equal(t, DefectType("rust_stain"), ParseDefectType("rust_stain"))
}
