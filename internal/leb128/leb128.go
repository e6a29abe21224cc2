// Package leb128 encodes integers in the variable-length format defined by
// the WebAssembly binary format. Only the encode direction exists here: the
// bridge emitter writes binaries, it never parses them.
package leb128

// AppendUint32 appends v to dst as unsigned LEB128 and returns the result.
func AppendUint32(dst []byte, v uint32) []byte {
	return AppendUint64(dst, uint64(v))
}

// AppendUint64 appends v to dst as unsigned LEB128 and returns the result.
func AppendUint64(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// AppendInt32 appends v to dst as signed LEB128 and returns the result.
// i32.const immediates use this encoding.
func AppendInt32(dst []byte, v int32) []byte {
	return AppendInt64(dst, int64(v))
}

// AppendInt64 appends v to dst as signed LEB128 and returns the result.
func AppendInt64(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7 // arithmetic shift, sign-fills
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
