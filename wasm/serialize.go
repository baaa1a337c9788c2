package wasm

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// Serialize encodes the module back to bytes.
//
// The output is canonical for a given in-memory structure: sections are
// emitted in stored order and all sizes use minimal LEB128 encoding. Two
// structurally identical modules therefore serialize to identical bytes,
// which is what canonical hashing depends on.
func (m *Module) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic)

	var ver [4]byte
	binary.LittleEndian.PutUint32(ver[:], version)
	buf.Write(ver[:])

	for _, s := range m.Sections {
		if s.ID > maxSectionID {
			return nil, newError(KindSerialize, "SEAL-WASM-101", "unknown section id")
		}
		var payload []byte
		if s.ID == SectionCustom {
			if !utf8.ValidString(s.Name) {
				return nil, newError(KindSerialize, "SEAL-WASM-102", "custom section name is not valid UTF-8")
			}
			payload = appendVaruint32(nil, uint32(len(s.Name)))
			payload = append(payload, s.Name...)
			payload = append(payload, s.Contents...)
		} else {
			if s.Name != "" {
				return nil, newError(KindSerialize, "SEAL-WASM-103", "non-custom section carries a name")
			}
			payload = s.Contents
		}
		buf.WriteByte(byte(s.ID))
		buf.Write(appendVaruint32(nil, uint32(len(payload))))
		buf.Write(payload)
	}
	return buf.Bytes(), nil
}

// appendVaruint32 appends the minimal unsigned LEB128 encoding of v.
func appendVaruint32(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}
