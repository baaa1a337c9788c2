package wasm

import "wasmseal.dev/wasmseal/cidutil"

// CanonicalCID returns an IPFS-compatible CIDv1 (raw + sha2-256) for the
// module's canonical bytes: its serialization with the claims section
// removed. Two modules with the same canonical hash have the same canonical
// CID regardless of any embedded token.
func CanonicalCID(m *Module) (string, error) {
	ref := m.Clone()
	ref.ClearCustomSection(ClaimsSectionName)
	b, err := ref.Serialize()
	if err != nil {
		return "", err
	}
	return cidutil.CIDv1RawSHA256(b), nil
}

// ArtifactCID returns the CIDv1 of the exact bytes as stored, claims section
// included. This is the identifier artifact stores key on.
func ArtifactCID(data []byte) string {
	return cidutil.CIDv1RawSHA256(data)
}
