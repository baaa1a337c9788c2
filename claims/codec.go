package claims

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wasmseal.dev/wasmseal/keys"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

const headerType = "jwt"

// EncodeOptions tunes token production. The zero value is ready to use.
type EncodeOptions struct {
	// Clock supplies the issued-at timestamp. Nil uses time.Now.
	Clock Clock
	// ID overrides the generated token ID. Empty generates a fresh one.
	ID string
}

// Encode signs c with kp and returns the compact token string. The token's
// algorithm is the key pair's algorithm. IssuedAt and ID on the input are
// ignored; Encode stamps its own.
func Encode(c Claims, kp *keys.KeyPair, opts EncodeOptions) (string, error) {
	if kp == nil {
		return "", errors.New("claims: nil key pair")
	}
	now := time.Now
	if opts.Clock != nil {
		now = opts.Clock
	}
	c.IssuedAt = now().Unix()
	c.ID = opts.ID
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Issuer == "" {
		c.Issuer = kp.PublicKey()
	}
	if c.Issuer != kp.PublicKey() {
		return "", errors.New("claims: issuer does not match signing key")
	}

	hdr, err := json.Marshal(header{Type: headerType, Algorithm: kp.Algorithm()})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	signingInput := b64(hdr) + "." + b64(payload)
	hashAlg, err := keys.HashAlgFor(kp.Algorithm())
	if err != nil {
		return "", err
	}
	digest, err := keys.DigestFor(hashAlg, []byte(signingInput))
	if err != nil {
		return "", err
	}
	sig, err := kp.SignDigest(digest)
	if err != nil {
		return "", err
	}
	return signingInput + "." + b64(sig), nil
}

// Decode parses a compact token string and verifies its signature against
// the issuer public key carried in the claims. It fails on malformed tokens
// and on signature mismatch; it does not evaluate the validity window (see
// Validate).
func Decode(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("claims: token must have 3 segments, got %d", len(parts))
	}

	hdrBytes, err := unb64(parts[0])
	if err != nil {
		return Claims{}, fmt.Errorf("claims: invalid header encoding: %w", err)
	}
	var hdr header
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return Claims{}, fmt.Errorf("claims: invalid header: %w", err)
	}
	if hdr.Type != headerType {
		return Claims{}, fmt.Errorf("claims: unsupported token type %q", hdr.Type)
	}

	payloadBytes, err := unb64(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("claims: invalid payload encoding: %w", err)
	}
	var c Claims
	if err := json.Unmarshal(payloadBytes, &c); err != nil {
		return Claims{}, fmt.Errorf("claims: invalid payload: %w", err)
	}

	pub, err := keys.ParsePublicKey(c.Issuer)
	if err != nil {
		return Claims{}, fmt.Errorf("claims: invalid issuer key: %w", err)
	}
	// The issuer key's algorithm is authoritative; a mismatched header alg
	// would let an attacker downgrade the verification scheme.
	if pub.Algorithm() != hdr.Algorithm {
		return Claims{}, fmt.Errorf("claims: issuer key algorithm %q does not match token algorithm %q", pub.Algorithm(), hdr.Algorithm)
	}

	sig, err := unb64(parts[2])
	if err != nil {
		return Claims{}, fmt.Errorf("claims: invalid signature encoding: %w", err)
	}
	hashAlg, err := keys.HashAlgFor(pub.Algorithm())
	if err != nil {
		return Claims{}, err
	}
	digest, err := keys.DigestFor(hashAlg, []byte(parts[0]+"."+parts[1]))
	if err != nil {
		return Claims{}, err
	}
	if !pub.VerifyDigest(digest, sig) {
		return Claims{}, errors.New("claims: signature did not verify")
	}
	return c, nil
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func unb64(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
