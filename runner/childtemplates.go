package runner

// childStepTemplates are the only byte buffers the child is allowed to
// write to the handshake pipe. Each is built once here, well before any
// fork, as "<4-byte native-endian length><step description>, errno=000" —
// exactly the pipe's length-prefixed text framing. fork()'s copy-on-write
// means the child mutating its own copy of one of these buffers never
// touches the parent's: the child only ever overwrites the trailing three
// errno digits, never reallocates or grows the slice.
var childStepTemplates [len(childStepText)][]byte

func init() {
	for step, text := range childStepText {
		if text == "" {
			continue
		}
		body := []byte(text + ", errno=000")
		buf := make([]byte, 4+len(body))
		nativeEndian.PutUint32(buf, uint32(len(body)))
		copy(buf[4:], body)
		childStepTemplates[step] = buf
	}
}

// writeChildErrno overwrites the trailing three ASCII digits of a
// childStepTemplates entry with errno, clamped to 999. It touches only
// array indices already inside buf, so it performs no allocation and is
// safe to call from the forked child between fork and exec.
//
//go:noinline
//go:norace
//go:nosplit
func writeChildErrno(buf []byte, errno uint32) {
	if errno > 999 {
		errno = 999
	}
	off := len(buf) - 3
	buf[off] = byte('0' + (errno/100)%10)
	buf[off+1] = byte('0' + (errno/10)%10)
	buf[off+2] = byte('0' + errno%10)
}
