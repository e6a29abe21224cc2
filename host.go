package hostfns

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ModuleName is the name wasm guests use to import the host functions,
// e.g. (import "hostfns" "sum" (func ...)).
const ModuleName = "hostfns"

// Errno is the result code returned by the host functions. Values are
// stable: foreign bindings hard-code them.
type Errno = uint32

const (
	// ErrnoSuccess means the operation completed and all outputs were
	// written.
	ErrnoSuccess Errno = 0
	// ErrnoOverflow means the exact sum was not representable in 32 bits.
	// No outputs were written.
	ErrnoOverflow Errno = 1
	// ErrnoRange means the caller-supplied buffer was too small. No
	// outputs were written.
	ErrnoRange Errno = 2
	// ErrnoFault means an out-pointer was invalid or the calling module
	// has no memory. No outputs were written.
	ErrnoFault Errno = 3
)

// ErrnoMessage returns a human-readable message for errno, e.g. to attach
// to an error raised in the host runtime. ErrnoOverflow maps to the exact
// ErrOverflow message.
func ErrnoMessage(errno Errno) string {
	switch errno {
	case ErrnoSuccess:
		return "success"
	case ErrnoOverflow:
		return ErrOverflow.Error()
	case ErrnoRange:
		return "buffer too small for greeting"
	case ErrnoFault:
		return "bad address"
	default:
		return fmt.Sprintf("unknown errno %d", errno)
	}
}

// MustInstantiate calls Instantiate or panics on error.
//
// This is a simpler function for those who know a module named ModuleName
// is not already instantiated, and don't need to unload it.
func MustInstantiate(ctx context.Context, r wazero.Runtime) {
	if _, err := Instantiate(ctx, r); err != nil {
		panic(err)
	}
}

// Instantiate instantiates the ModuleName module into r, exporting the two
// primitives with an errno-and-out-pointer ABI:
//
//	sum(a i32, b i32, result_ptr u32) -> errno u32
//	hello(buf u32, buf_len u32, written_ptr u32) -> errno u32
//
// sum writes the 32-bit sum little-endian at result_ptr on success. hello
// writes the greeting bytes at buf and the byte count at written_ptr;
// buf_len shorter than the greeting yields ErrnoRange. All pointers are
// validated before anything is written, so a nonzero errno implies guest
// memory is untouched.
//
// Closing the wazero.Runtime has the same effect as closing the result.
func Instantiate(ctx context.Context, r wazero.Runtime) (api.Closer, error) {
	return r.NewHostModuleBuilder(ModuleName).
		NewFunctionBuilder().
		WithFunc(hostSum).
		WithParameterNames("a", "b", "result_ptr").
		Export("sum").
		NewFunctionBuilder().
		WithFunc(hostHello).
		WithParameterNames("buf", "buf_len", "written_ptr").
		Export("hello").
		Instantiate(ctx)
}

func hostSum(_ context.Context, mod api.Module, a, b int32, resultPtr uint32) Errno {
	mem := mod.Memory()
	if mem == nil {
		return ErrnoFault
	}
	sum, err := Sum(a, b)
	if err != nil {
		return ErrnoOverflow
	}
	if !mem.WriteUint32Le(resultPtr, uint32(sum)) {
		return ErrnoFault
	}
	return ErrnoSuccess
}

func hostHello(_ context.Context, mod api.Module, buf, bufLen, writtenPtr uint32) Errno {
	mem := mod.Memory()
	if mem == nil {
		return ErrnoFault
	}
	n := uint32(len(Greeting))
	if bufLen < n {
		return ErrnoRange
	}
	// Validate both destinations up front: errno != 0 must mean nothing
	// was written.
	if _, ok := mem.Read(buf, n); !ok {
		return ErrnoFault
	}
	if _, ok := mem.Read(writtenPtr, 4); !ok {
		return ErrnoFault
	}
	mem.Write(buf, []byte(Greeting))
	mem.WriteUint32Le(writtenPtr, n)
	return ErrnoSuccess
}
