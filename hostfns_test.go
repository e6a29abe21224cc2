package hostfns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{name: "small positives", a: 2, b: 3, want: 5},
		{name: "negative cancels positive", a: -1, b: 1, want: 0},
		{name: "zeros", a: 0, b: 0, want: 0},
		{name: "max plus zero", a: math.MaxInt32, b: 0, want: math.MaxInt32},
		{name: "min plus zero", a: math.MinInt32, b: 0, want: math.MinInt32},
		{name: "max plus min", a: math.MaxInt32, b: math.MinInt32, want: -1},
		{name: "reaches max exactly", a: math.MaxInt32 - 1, b: 1, want: math.MaxInt32},
		{name: "reaches min exactly", a: math.MinInt32 + 1, b: -1, want: math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sum(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumOverflow(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
	}{
		{name: "max plus one", a: math.MaxInt32, b: 1},
		{name: "min minus one", a: math.MinInt32, b: -1},
		{name: "max plus max", a: math.MaxInt32, b: math.MaxInt32},
		{name: "min plus min", a: math.MinInt32, b: math.MinInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sum(tt.a, tt.b)
			require.ErrorIs(t, err, ErrOverflow)
			assert.Zero(t, got, "no partial result on overflow")
		})
	}
}

func TestSumErrorMessage(t *testing.T) {
	_, err := Sum(math.MaxInt32, 1)
	require.EqualError(t, err, "Integer overflow in sum operation")
}

// TestSumCommutative checks sum(a, b) == sum(b, a) across in-range and
// overflowing pairs: both orders succeed with equal values, or both fail.
func TestSumCommutative(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32 + 1, -624485, -1, 0, 1, 2, 624485, math.MaxInt32 - 1, math.MaxInt32}
	for _, a := range values {
		for _, b := range values {
			ab, errAB := Sum(a, b)
			ba, errBA := Sum(b, a)
			require.Equal(t, errAB, errBA, "Sum(%d,%d) vs Sum(%d,%d)", a, b, b, a)
			require.Equal(t, ab, ba, "Sum(%d,%d) vs Sum(%d,%d)", a, b, b, a)
		}
	}
}

func TestHello(t *testing.T) {
	got := Hello()
	assert.Equal(t, "Hello there", got)
	assert.Len(t, got, 11)

	// Fixed across calls.
	assert.Equal(t, got, Hello())
}

func TestErrnoMessage(t *testing.T) {
	tests := []struct {
		errno Errno
		want  string
	}{
		{errno: ErrnoSuccess, want: "success"},
		{errno: ErrnoOverflow, want: "Integer overflow in sum operation"},
		{errno: ErrnoRange, want: "buffer too small for greeting"},
		{errno: ErrnoFault, want: "bad address"},
		{errno: 42, want: "unknown errno 42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrnoMessage(tt.errno))
	}
}
