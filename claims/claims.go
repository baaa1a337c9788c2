// Package claims implements the signed capability-claims token: a compact,
// self-verifying textual encoding of a module's identity, permissions, and
// validity window.
//
// A token is three base64url segments, header.payload.signature. The header
// names the signature algorithm; the payload is the JSON claims set; the
// signature covers the digest of "header.payload" and verifies against the
// issuer public key carried in the claims themselves.
package claims

import "time"

// Clock supplies the current time. Injectable so validity-window logic is
// deterministically testable.
type Clock func() time.Time

// Claims is the signable manifest embedded in a module.
//
// ModuleHash is empty until the embedder computes the module's canonical
// hash; it is never an input to its own computation.
type Claims struct {
	// ID uniquely identifies one issued token.
	ID string `json:"jti"`
	// IssuedAt is set by Encode, in Unix epoch seconds.
	IssuedAt int64 `json:"iat"`
	// Issuer is the signer's public key string.
	Issuer string `json:"iss"`
	// Subject is the signee's public key string.
	Subject string `json:"sub"`
	// NotBefore and Expires bound the validity window, in Unix epoch
	// seconds. Zero means unbounded.
	NotBefore int64 `json:"nbf,omitempty"`
	Expires   int64 `json:"exp,omitempty"`

	// Caps and Tags are opaque, ordered capability and tag strings.
	Caps []string `json:"caps,omitempty"`
	Tags []string `json:"tags,omitempty"`

	// ModuleHash is the canonical hash of the module the token attests to,
	// uppercase hexadecimal.
	ModuleHash string `json:"hash,omitempty"`
}

// Token pairs a raw signed token string with its decoded Claims. It is
// produced only by a successful decode.
type Token struct {
	Raw    string
	Claims Claims
}
