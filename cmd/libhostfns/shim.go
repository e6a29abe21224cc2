package main

/*
#include <stdint.h>
*/
import "C"

// Go-typed shims over the exported C functions. Test files cannot use cgo,
// so the conversions live here.

func callSum(a, b int32) (result, errno int32) {
	var out C.int32_t
	errno = int32(hostfns_sum(C.int32_t(a), C.int32_t(b), &out))
	return int32(out), errno
}

func callSumNullResult(a, b int32) int32 {
	return int32(hostfns_sum(C.int32_t(a), C.int32_t(b), nil))
}

func callHello() string {
	s := hostfns_hello()
	defer hostfns_string_free(s)
	return C.GoString(s)
}

func callErrorMessage(errno int32) string {
	s := hostfns_error_message(C.int32_t(errno))
	defer hostfns_string_free(s)
	return C.GoString(s)
}
