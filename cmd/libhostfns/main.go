// libhostfns exports the hostfns primitives over a C ABI, for host
// runtimes that load native libraries (Node FFI, Python ctypes, plain C).
//
// Build with either:
//
//	go build -buildmode=c-shared  -o libhostfns.so ./cmd/libhostfns
//	go build -buildmode=c-archive -o libhostfns.a  ./cmd/libhostfns
//
// Result codes match the wasm host module: 0 success, 1 overflow, 3 bad
// address. Strings returned by hostfns_hello and hostfns_error_message are
// malloc'd; callers release them with hostfns_string_free.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/hostfns/hostfns"
)

// hostfns_sum writes a + b to result and returns 0, or returns 1 on
// overflow and 3 when result is NULL. result is untouched on any nonzero
// return.
//
//export hostfns_sum
func hostfns_sum(a, b C.int32_t, result *C.int32_t) C.int32_t {
	if result == nil {
		return C.int32_t(hostfns.ErrnoFault)
	}
	sum, err := hostfns.Sum(int32(a), int32(b))
	if err != nil {
		return C.int32_t(hostfns.ErrnoOverflow)
	}
	*result = C.int32_t(sum)
	return C.int32_t(hostfns.ErrnoSuccess)
}

// hostfns_hello returns a malloc'd copy of the greeting. It never fails.
//
//export hostfns_hello
func hostfns_hello() *C.char {
	return C.CString(hostfns.Hello())
}

// hostfns_error_message returns a malloc'd human-readable message for a
// result code returned by hostfns_sum.
//
//export hostfns_error_message
func hostfns_error_message(errno C.int32_t) *C.char {
	return C.CString(hostfns.ErrnoMessage(hostfns.Errno(errno)))
}

// hostfns_string_free releases a string returned by hostfns_hello or
// hostfns_error_message.
//
//export hostfns_string_free
func hostfns_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// main is required by c-shared and c-archive build modes, but never runs.
func main() {}
