package runner

import (
	"encoding/binary"
	"unsafe"
)

// nativeEndian is resolved once from a runtime probe, the same trick the
// teacher's units/helper package used to tell little- from big-endian
// hosts apart. The pipe handshake (childtemplates.go, parent_linux.go) needs it to
// read/write the 4-byte host-endian message-length prefix without special
// casing every architecture by name.
var nativeEndian = func() binary.ByteOrder {
	if isLittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

func isLittleEndian() bool {
	s := uint16(0xAAFF)
	b := *(*uint8)(unsafe.Pointer(&s))
	return b == 0xFF
}
