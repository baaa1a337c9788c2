package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// Supported signature algorithms. Key strings are "<alg>:<base64 pubkey>".
const (
	AlgEd25519    = "ed25519"
	AlgDilithium3 = "dilithium3"
)

// KeyPair is a signing identity. It exposes a public-key string and a
// sign-the-digest capability; private material never leaves the pair.
//
// A KeyPair is safe for concurrent read-only use: PublicKey and SignDigest
// do not mutate it.
type KeyPair struct {
	alg string

	edPub  ed25519.PublicKey
	edPriv ed25519.PrivateKey

	d3Pub  *mode3.PublicKey
	d3Priv *mode3.PrivateKey
}

// Generate returns a fresh Ed25519 key pair.
func Generate() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyPair{alg: AlgEd25519, edPub: pub, edPriv: priv}, nil
}

// FromSeed returns the Ed25519 key pair for a 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("keys: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{alg: AlgEd25519, edPub: priv.Public().(ed25519.PublicKey), edPriv: priv}, nil
}

// GenerateDilithium3 returns a fresh post-quantum key pair. A nil rng uses
// crypto/rand.
func GenerateDilithium3(rng io.Reader) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	pub, priv, err := mode3.GenerateKey(rng)
	if err != nil {
		return nil, err
	}
	return &KeyPair{alg: AlgDilithium3, d3Pub: pub, d3Priv: priv}, nil
}

// Algorithm returns the pair's signature algorithm name.
func (kp *KeyPair) Algorithm() string { return kp.alg }

// PublicKey returns the pair's public key string, "<alg>:<base64>".
func (kp *KeyPair) PublicKey() string {
	switch kp.alg {
	case AlgEd25519:
		return AlgEd25519 + ":" + base64.StdEncoding.EncodeToString(kp.edPub)
	case AlgDilithium3:
		b, err := kp.d3Pub.MarshalBinary()
		if err != nil {
			return ""
		}
		return AlgDilithium3 + ":" + base64.StdEncoding.EncodeToString(b)
	default:
		return ""
	}
}

// SignDigest signs a precomputed message digest and returns the raw signature
// bytes. Use DigestFor to produce the digest for the pair's algorithm.
func (kp *KeyPair) SignDigest(digest []byte) ([]byte, error) {
	switch kp.alg {
	case AlgEd25519:
		return ed25519.Sign(kp.edPriv, digest), nil
	case AlgDilithium3:
		sig := make([]byte, mode3.SignatureSize)
		mode3.SignTo(kp.d3Priv, digest, sig)
		return sig, nil
	default:
		return nil, fmt.Errorf("keys: unsupported algorithm %q", kp.alg)
	}
}

// PublicKey is the verification half of a KeyPair, parsed from a key string.
type PublicKey struct {
	alg string

	edPub ed25519.PublicKey
	d3Pub *mode3.PublicKey
}

// ParsePublicKey parses a "<alg>:<base64>" key string.
func ParsePublicKey(s string) (*PublicKey, error) {
	alg, enc, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("keys: invalid public key encoding %q", s)
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("keys: invalid public key base64: %w", err)
	}
	switch alg {
	case AlgEd25519:
		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("keys: invalid ed25519 public key length %d", len(raw))
		}
		return &PublicKey{alg: AlgEd25519, edPub: ed25519.PublicKey(raw)}, nil
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("keys: invalid dilithium3 public key: %w", err)
		}
		return &PublicKey{alg: AlgDilithium3, d3Pub: &pk}, nil
	default:
		return nil, fmt.Errorf("keys: unsupported key algorithm %q", alg)
	}
}

// Algorithm returns the key's signature algorithm name.
func (p *PublicKey) Algorithm() string { return p.alg }

// String returns the "<alg>:<base64>" form.
func (p *PublicKey) String() string {
	switch p.alg {
	case AlgEd25519:
		return AlgEd25519 + ":" + base64.StdEncoding.EncodeToString(p.edPub)
	case AlgDilithium3:
		b, err := p.d3Pub.MarshalBinary()
		if err != nil {
			return ""
		}
		return AlgDilithium3 + ":" + base64.StdEncoding.EncodeToString(b)
	default:
		return ""
	}
}

// VerifyDigest reports whether sig is a valid signature over digest.
func (p *PublicKey) VerifyDigest(digest, sig []byte) bool {
	switch p.alg {
	case AlgEd25519:
		if len(sig) != ed25519.SignatureSize {
			return false
		}
		return ed25519.Verify(p.edPub, digest, sig)
	case AlgDilithium3:
		if len(sig) != mode3.SignatureSize {
			return false
		}
		return mode3.Verify(p.d3Pub, digest, sig)
	default:
		return false
	}
}

// DigestFor hashes message with the named algorithm: sha256, sha512, or
// sha3-256.
func DigestFor(hashAlg string, message []byte) ([]byte, error) {
	switch hashAlg {
	case "sha256":
		s := sha256.Sum256(message)
		return s[:], nil
	case "sha512":
		s := sha512.Sum512(message)
		return s[:], nil
	case "sha3-256":
		s := sha3.Sum256(message)
		return s[:], nil
	default:
		return nil, fmt.Errorf("keys: unsupported hash algorithm %q", hashAlg)
	}
}

// HashAlgFor returns the digest algorithm paired with a signature algorithm
// in the token signing convention: SHA-256 for ed25519, SHA3-256 for
// dilithium3.
func HashAlgFor(sigAlg string) (string, error) {
	switch sigAlg {
	case AlgEd25519:
		return "sha256", nil
	case AlgDilithium3:
		return "sha3-256", nil
	default:
		return "", fmt.Errorf("keys: unsupported signature algorithm %q", sigAlg)
	}
}
