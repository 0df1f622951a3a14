package logsum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogsumShortCircuitsOnNegInf(t *testing.T) {
	assert.Equal(t, float32(3.5), Logsum(NegInf(), 3.5))
	assert.Equal(t, float32(3.5), Logsum(3.5, NegInf()))
	assert.True(t, math.IsInf(float64(Logsum(NegInf(), NegInf())), -1))
}

func TestLogsumMatchesClosedForm(t *testing.T) {
	pairs := [][2]float32{
		{0, 0}, {1, 2}, {-5, -5.3}, {10, -10}, {-100, -100.0001}, {0.001, -0.001},
	}
	for _, p := range pairs {
		got := Logsum(p[0], p[1])
		want := LogsumExact(p[0], p[1])
		assert.InDelta(t, want, got, 1e-3)
	}
}

func TestLogsumCommutative(t *testing.T) {
	assert.InDelta(t, Logsum(1.23, -4.56), Logsum(-4.56, 1.23), 1e-6)
}

func TestLogsumAssociative(t *testing.T) {
	a, b, c := float32(1.1), float32(-2.2), float32(3.3)
	left := Logsum(Logsum(a, b), c)
	right := Logsum(a, Logsum(b, c))
	assert.InDelta(t, left, right, 1e-3)
}

func TestLogsumBeyondCutoffReturnsMax(t *testing.T) {
	assert.Equal(t, float32(100), Logsum(100, 0))
}

func TestSum(t *testing.T) {
	assert.True(t, math.IsInf(float64(Sum(nil)), -1))
	got := Sum([]float32{0, 0, 0})
	want := Logsum(Logsum(0, 0), 0)
	assert.InDelta(t, want, got, 1e-6)
}
