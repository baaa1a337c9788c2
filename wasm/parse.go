package wasm

import (
	"encoding/binary"
	"unicode/utf8"
)

var magic = []byte{0x00, 0x61, 0x73, 0x6D} // "\0asm"

const version = uint32(1)

// Parse parses WebAssembly module bytes at the section level.
//
// Section payloads are retained opaquely; Parse validates only the container
// structure (magic, version, section headers, payload bounds, and custom
// section name encoding). Non-minimal LEB128 size encodings are accepted on
// input; Serialize always re-emits minimal encodings, so a parse/serialize
// round trip normalizes them.
func Parse(data []byte) (*Module, error) {
	if len(data) < 8 {
		return nil, newError(KindParse, "SEAL-WASM-001", "module shorter than header")
	}
	for i := range magic {
		if data[i] != magic[i] {
			return nil, newError(KindParse, "SEAL-WASM-002", "bad magic number")
		}
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != version {
		return nil, newError(KindParse, "SEAL-WASM-003", "unsupported module version")
	}

	m := &Module{}
	off := 8
	for off < len(data) {
		id := SectionID(data[off])
		if id > maxSectionID {
			return nil, newError(KindParse, "SEAL-WASM-004", "unknown section id")
		}
		off++

		size, n, err := readVaruint32(data, off)
		if err != nil {
			return nil, err
		}
		off += n
		if uint64(off)+uint64(size) > uint64(len(data)) {
			return nil, newError(KindParse, "SEAL-WASM-006", "section payload truncated")
		}
		payload := data[off : off+int(size)]
		off += int(size)

		sec := Section{ID: id}
		if id == SectionCustom {
			nameLen, n, err := readVaruint32(payload, 0)
			if err != nil {
				return nil, err
			}
			if uint64(n)+uint64(nameLen) > uint64(len(payload)) {
				return nil, newError(KindParse, "SEAL-WASM-007", "custom section name truncated")
			}
			name := payload[n : n+int(nameLen)]
			if !utf8.Valid(name) {
				return nil, newError(KindParse, "SEAL-WASM-008", "custom section name is not valid UTF-8")
			}
			sec.Name = string(name)
			sec.Contents = append([]byte(nil), payload[n+int(nameLen):]...)
		} else {
			sec.Contents = append([]byte(nil), payload...)
		}
		m.Sections = append(m.Sections, sec)
	}
	return m, nil
}

// readVaruint32 reads an unsigned LEB128 value of at most 32 bits starting at
// off. It returns the value and the number of bytes consumed.
func readVaruint32(data []byte, off int) (uint32, int, error) {
	var result uint64
	var shift uint
	n := 0
	for {
		if off+n >= len(data) {
			return 0, 0, newError(KindParse, "SEAL-WASM-005", "truncated LEB128 value")
		}
		b := data[off+n]
		n++
		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 35 {
			return 0, 0, newError(KindParse, "SEAL-WASM-005", "LEB128 value exceeds 32 bits")
		}
	}
	if result > 0xFFFFFFFF {
		return 0, 0, newError(KindParse, "SEAL-WASM-005", "LEB128 value exceeds 32 bits")
	}
	return uint32(result), n, nil
}
