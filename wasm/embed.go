package wasm

import (
	"time"

	"wasmseal.dev/wasmseal/claims"
	"wasmseal.dev/wasmseal/keys"
)

const secondsPerDay = 86400

// EmbedOptions tunes claim embedding. The zero value is ready to use.
type EmbedOptions struct {
	// Clock supplies "now" for the token's issued-at stamp. Nil uses
	// time.Now.
	Clock claims.Clock
	// TokenID overrides the generated token ID. Empty generates a fresh
	// one.
	TokenID string
}

// EmbedClaims returns a new module buffer carrying a freshly signed claims
// token whose declared hash is the canonical hash of the unsigned module.
//
// The input buffer and claims value are never mutated; failure at any step
// yields no output. Any claims section already present in orig is replaced.
func EmbedClaims(orig []byte, c claims.Claims, kp *keys.KeyPair, opts EmbedOptions) ([]byte, error) {
	// Parse and hash the normalized form rather than the caller's raw
	// bytes, so the hash matches what a verifier reconstructs after its
	// own parse/serialize round trip.
	m, err := Parse(orig)
	if err != nil {
		return nil, err
	}
	hash, err := CanonicalHash(m)
	if err != nil {
		return nil, err
	}

	c.ModuleHash = hash
	token, err := claims.Encode(c, kp, claims.EncodeOptions{Clock: opts.Clock, ID: opts.TokenID})
	if err != nil {
		return nil, wrapError(KindSigning, "SEAL-EMBED-001", "signing claims token", err)
	}

	// A fresh parse, not the hashed clone: the hashed-without-token view
	// must never alias the to-be-serialized-with-token view.
	out, err := Parse(orig)
	if err != nil {
		return nil, err
	}
	out.SetCustomSection(ClaimsSectionName, []byte(token))
	return out.Serialize()
}

// SignOptions describes a SignBufferWithClaims request.
//
// Day offsets are relative to the clock's "now" and convert to absolute
// epoch seconds (now + days*86400). A zero or negative offset leaves the
// corresponding bound unset.
type SignOptions struct {
	// AccountKeyPair signs the token; its public key becomes the issuer.
	AccountKeyPair *keys.KeyPair
	// ModuleKeyPair identifies the module; its public key becomes the
	// subject.
	ModuleKeyPair *keys.KeyPair

	Caps []string
	Tags []string

	ExpiresInDays int
	NotBeforeDays int

	Clock   claims.Clock
	TokenID string
}

// SignBufferWithClaims assembles Claims from a minimal parameter set and
// embeds them into buf.
func SignBufferWithClaims(buf []byte, opts SignOptions) ([]byte, error) {
	if opts.AccountKeyPair == nil || opts.ModuleKeyPair == nil {
		return nil, newError(KindSigning, "SEAL-EMBED-002", "account and module key pairs are required")
	}
	now := time.Now
	if opts.Clock != nil {
		now = opts.Clock
	}
	c := claims.Claims{
		Issuer:    opts.AccountKeyPair.PublicKey(),
		Subject:   opts.ModuleKeyPair.PublicKey(),
		Caps:      opts.Caps,
		Tags:      opts.Tags,
		NotBefore: daysFromNow(now, opts.NotBeforeDays),
		Expires:   daysFromNow(now, opts.ExpiresInDays),
	}
	return EmbedClaims(buf, c, opts.AccountKeyPair, EmbedOptions{Clock: opts.Clock, TokenID: opts.TokenID})
}

func daysFromNow(now func() time.Time, days int) int64 {
	if days <= 0 {
		return 0
	}
	return now().Unix() + int64(days)*secondsPerDay
}
