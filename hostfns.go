// Package hostfns exposes two stateless primitives, an overflow-checked
// signed 32-bit addition and a fixed greeting string, to host runtimes.
//
// The primitives are callable three ways:
//
//   - directly, via Sum and Hello
//   - from WebAssembly guests, via the host module registered by Instantiate
//   - over a C ABI, via the exports in cmd/libhostfns
//
// Both functions are pure and reentrant: they hold no state, perform no
// I/O, and are safe for concurrent use without synchronization.
package hostfns

import (
	"errors"
	"math"
)

// Greeting is the fixed string returned by Hello.
const Greeting = "Hello there"

// ErrOverflow is returned by Sum when the exact sum of its operands cannot
// be represented as a signed 32-bit integer. The message is part of the
// contract and is surfaced verbatim to foreign callers.
var ErrOverflow = errors.New("Integer overflow in sum operation")

// Sum returns a + b, or ErrOverflow when the exact sum falls outside
// [math.MinInt32, math.MaxInt32]. Overflow is deterministic and never
// retried: callers must choose different inputs or a wider type.
func Sum(a, b int32) (int32, error) {
	sum := int64(a) + int64(b)
	if sum < math.MinInt32 || sum > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(sum), nil
}

// Hello returns Greeting. It never fails.
func Hello() string {
	return Greeting
}
