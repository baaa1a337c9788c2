package wasm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
)

// sha256Digest folds a byte stream into a SHA-256 digest using a bounded
// read buffer. The digest is order-sensitive and deterministic: the same
// bytes always produce the same digest.
func sha256Digest(r io.Reader) ([]byte, error) {
	h := sha256.New()
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapError(KindIO, "SEAL-HASH-001", "reading module bytes", err)
		}
	}
	return h.Sum(nil), nil
}

// hexUpper renders a digest as uppercase hexadecimal with no separators.
func hexUpper(digest []byte) string {
	return strings.ToUpper(hex.EncodeToString(digest))
}

// CanonicalHash computes the single normalized representation against which
// module integrity is judged: the uppercase-hex SHA-256 of the module's
// serialized bytes with the claims section removed.
//
// The claims token must not be part of what it attests to; otherwise each
// embed would change the hash it has to encode. The receiver is never
// mutated: the claims section is cleared on a clone.
func CanonicalHash(m *Module) (string, error) {
	ref := m.Clone()
	ref.ClearCustomSection(ClaimsSectionName)
	b, err := ref.Serialize()
	if err != nil {
		return "", err
	}
	digest, err := sha256Digest(bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	return hexUpper(digest), nil
}
