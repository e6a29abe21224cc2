// Package bridge emits a small, self-contained WebAssembly module that
// imports the hostfns host functions and re-exports ergonomic wrappers.
// It exists so that embedders and tests have a working guest without a
// wasm toolchain in the loop.
//
// Exports:
//
//	memory                      one page of linear memory
//	sum(i32, i32) -> i32        host sum; traps on any nonzero errno
//	greeting() -> i64           ptr<<32|len of the greeting in memory;
//	                            traps on any nonzero errno
//	sum_errno(i32,i32,i32) -> i32    raw passthrough to hostfns.sum
//	hello_errno(i32,i32,i32) -> i32  raw passthrough to hostfns.hello
//
// The packed ptr/len convention in greeting matches what TinyGo guests use
// when returning strings to a host.
package bridge

import (
	"sync"

	"github.com/hostfns/hostfns/internal/leb128"
)

// Export names of the bridge module.
const (
	ExportMemory     = "memory"
	ExportSum        = "sum"
	ExportGreeting   = "greeting"
	ExportSumErrno   = "sum_errno"
	ExportHelloErrno = "hello_errno"
)

// Memory layout. Offset zero is 4 bytes of scratch shared by the sum
// result and the hello written-count; the greeting lands at greetingOffset.
const (
	scratchOffset  = 0
	greetingOffset = 8
	greetingCap    = 1024
)

// importedModule must match hostfns.ModuleName. Spelled out here to keep
// this package free of a dependency cycle with the root package.
const importedModule = "hostfns"

const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionExport   = 7
	sectionCode     = 10
)

const (
	valTypeI32 = 0x7f
	valTypeI64 = 0x7e

	externTypeFunc   = 0x00
	externTypeMemory = 0x02
)

// Opcodes used by the function bodies.
const (
	opUnreachable  = 0x00
	opIf           = 0x04
	opEnd          = 0x0b
	opCall         = 0x10
	opLocalGet     = 0x20
	opI32Load      = 0x28
	opI32Const     = 0x41
	opI64Const     = 0x42
	opI64ExtendI32 = 0xad // i64.extend_i32_u
	opI64Or        = 0x84

	blockTypeEmpty = 0x40
)

// Function index space: imports first, then defined functions.
const (
	fnHostSum = iota
	fnHostHello
	fnSum
	fnGreeting
	fnSumErrno
	fnHelloErrno
)

var (
	buildOnce sync.Once
	binary    []byte
)

// Binary returns the wasm binary of the bridge module. The returned slice
// is a copy; callers may mutate it.
func Binary() []byte {
	buildOnce.Do(func() { binary = build() })
	return append([]byte{}, binary...)
}

func build() []byte {
	// Type index space. The two imports and both passthroughs share the
	// (i32,i32,i32)->i32 shape.
	const (
		typeErrno    = 0 // (i32, i32, i32) -> i32
		typeSum      = 1 // (i32, i32) -> i32
		typeGreeting = 2 // () -> i64
	)

	mod := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	mod = section(mod, sectionType, vec(
		funcType([]byte{valTypeI32, valTypeI32, valTypeI32}, []byte{valTypeI32}),
		funcType([]byte{valTypeI32, valTypeI32}, []byte{valTypeI32}),
		funcType(nil, []byte{valTypeI64}),
	))

	mod = section(mod, sectionImport, vec(
		funcImport(importedModule, "sum", typeErrno),
		funcImport(importedModule, "hello", typeErrno),
	))

	mod = section(mod, sectionFunction, vec(
		leb128.AppendUint32(nil, typeSum),
		leb128.AppendUint32(nil, typeGreeting),
		leb128.AppendUint32(nil, typeErrno),
		leb128.AppendUint32(nil, typeErrno),
	))

	// One memory, min one page, no max.
	mod = section(mod, sectionMemory, vec([]byte{0x00, 0x01}))

	mod = section(mod, sectionExport, vec(
		export(ExportMemory, externTypeMemory, 0),
		export(ExportSum, externTypeFunc, fnSum),
		export(ExportGreeting, externTypeFunc, fnGreeting),
		export(ExportSumErrno, externTypeFunc, fnSumErrno),
		export(ExportHelloErrno, externTypeFunc, fnHelloErrno),
	))

	mod = section(mod, sectionCode, vec(
		funcBody(sumBody()),
		funcBody(greetingBody()),
		funcBody(passthroughBody(fnHostSum)),
		funcBody(passthroughBody(fnHostHello)),
	))

	return mod
}

// sumBody calls the host sum with the result pointer at scratchOffset,
// traps when errno is nonzero, and returns the loaded result.
func sumBody() []byte {
	var b []byte
	b = append(b, opLocalGet)
	b = leb128.AppendUint32(b, 0)
	b = append(b, opLocalGet)
	b = leb128.AppendUint32(b, 1)
	b = append(b, opI32Const)
	b = leb128.AppendInt32(b, scratchOffset)
	b = append(b, opCall)
	b = leb128.AppendUint32(b, fnHostSum)
	b = trapIfNonzero(b)
	b = loadScratch(b)
	return b
}

// greetingBody calls the host hello into this module's own memory, traps
// when errno is nonzero, and returns greetingOffset<<32 | written.
func greetingBody() []byte {
	var b []byte
	b = append(b, opI32Const)
	b = leb128.AppendInt32(b, greetingOffset)
	b = append(b, opI32Const)
	b = leb128.AppendInt32(b, greetingCap)
	b = append(b, opI32Const)
	b = leb128.AppendInt32(b, scratchOffset)
	b = append(b, opCall)
	b = leb128.AppendUint32(b, fnHostHello)
	b = trapIfNonzero(b)
	b = append(b, opI64Const)
	b = leb128.AppendInt64(b, int64(greetingOffset)<<32)
	b = loadScratch(b)
	b = append(b, opI64ExtendI32, opI64Or)
	return b
}

// passthroughBody forwards all three i32 parameters to the host function
// fn and returns its errno unchanged.
func passthroughBody(fn uint32) []byte {
	var b []byte
	for i := uint32(0); i < 3; i++ {
		b = append(b, opLocalGet)
		b = leb128.AppendUint32(b, i)
	}
	b = append(b, opCall)
	b = leb128.AppendUint32(b, fn)
	return b
}

// trapIfNonzero consumes the i32 on the stack and traps when it is not
// zero.
func trapIfNonzero(b []byte) []byte {
	return append(b, opIf, blockTypeEmpty, opUnreachable, opEnd)
}

// loadScratch pushes the i32 stored at scratchOffset.
func loadScratch(b []byte) []byte {
	b = append(b, opI32Const)
	b = leb128.AppendInt32(b, scratchOffset)
	b = append(b, opI32Load)
	b = leb128.AppendUint32(b, 2) // alignment
	b = leb128.AppendUint32(b, 0) // offset immediate
	return b
}

func funcType(params, results []byte) []byte {
	b := []byte{0x60}
	b = leb128.AppendUint32(b, uint32(len(params)))
	b = append(b, params...)
	b = leb128.AppendUint32(b, uint32(len(results)))
	b = append(b, results...)
	return b
}

func funcImport(module, field string, typeIdx uint32) []byte {
	b := name(nil, module)
	b = name(b, field)
	b = append(b, externTypeFunc)
	return leb128.AppendUint32(b, typeIdx)
}

func export(field string, kind byte, idx uint32) []byte {
	b := name(nil, field)
	b = append(b, kind)
	return leb128.AppendUint32(b, idx)
}

// funcBody size-prefixes instrs along with an empty local declaration and
// the terminal end opcode.
func funcBody(instrs []byte) []byte {
	body := append([]byte{0x00}, instrs...)
	body = append(body, opEnd)
	b := leb128.AppendUint32(nil, uint32(len(body)))
	return append(b, body...)
}

// vec encodes a count-prefixed concatenation of items.
func vec(items ...[]byte) []byte {
	b := leb128.AppendUint32(nil, uint32(len(items)))
	for _, item := range items {
		b = append(b, item...)
	}
	return b
}

// section appends a size-prefixed section to mod.
func section(mod []byte, id byte, contents []byte) []byte {
	mod = append(mod, id)
	mod = leb128.AppendUint32(mod, uint32(len(contents)))
	return append(mod, contents...)
}

func name(b []byte, s string) []byte {
	b = leb128.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}
