package wasm

import (
	"unicode/utf8"

	"wasmseal.dev/wasmseal/claims"
)

// ExtractClaims retrieves, decodes, and verifies the claims token embedded
// in module bytes.
//
// A module with no claims section returns (nil, nil): absence of a token is
// a valid, expected state for unsigned modules, not an error. A returned
// Token has a verified signature and a declared module hash that matches the
// module's current canonical hash; any other byte of the module having
// changed since embedding surfaces as a KindIntegrity error.
func ExtractClaims(data []byte) (*claims.Token, error) {
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	payload, ok := m.CustomSection(ClaimsSectionName)
	if !ok {
		return nil, nil
	}
	if !utf8.Valid(payload) {
		return nil, newError(KindEncoding, "SEAL-EXTRACT-001", "claims section payload is not valid UTF-8")
	}
	raw := string(payload)

	c, err := claims.Decode(raw)
	if err != nil {
		return nil, wrapError(KindToken, "SEAL-EXTRACT-002", "decoding claims token", err)
	}

	hash, err := CanonicalHash(m)
	if err != nil {
		return nil, err
	}
	if hash != c.ModuleHash {
		return nil, newError(KindIntegrity, "SEAL-INT-401", "module hash does not match embedded claims")
	}
	return &claims.Token{Raw: raw, Claims: c}, nil
}
