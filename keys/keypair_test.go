package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"
)

type deterministicReader struct{ b byte }

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func TestFromSeedPublicKeyFormat(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 0x42
	}
	kp, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	pub := kp.PublicKey()
	if !strings.HasPrefix(pub, "ed25519:") {
		t.Fatalf("expected ed25519 prefix, got %q", pub)
	}
	b64 := strings.TrimPrefix(pub, "ed25519:")
	pubBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("expected valid base64: %v", err)
	}
	if len(pubBytes) != ed25519.PublicKeySize {
		t.Fatalf("expected %d pubkey bytes, got %d", ed25519.PublicKeySize, len(pubBytes))
	}
	if pub != IssuerKeyFromSeed(seed) {
		t.Fatalf("KeyPair and IssuerKeyFromSeed disagree")
	}
}

func TestSignDigestVerifies(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	kp, err := FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}

	digest, err := DigestFor("sha256", []byte("hello"))
	if err != nil {
		t.Fatalf("DigestFor: %v", err)
	}
	sig, err := kp.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest: %v", err)
	}

	pub, err := ParsePublicKey(kp.PublicKey())
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !pub.VerifyDigest(digest, sig) {
		t.Fatalf("signature did not verify")
	}
	if pub.VerifyDigest(digest, append([]byte(nil), make([]byte, ed25519.SignatureSize)...)) {
		t.Fatalf("zero signature verified")
	}
}

func TestDilithium3RoundTrip(t *testing.T) {
	kp, err := GenerateDilithium3(&deterministicReader{})
	if err != nil {
		t.Fatalf("GenerateDilithium3: %v", err)
	}
	if kp.Algorithm() != AlgDilithium3 {
		t.Fatalf("unexpected algorithm %q", kp.Algorithm())
	}

	digest, err := DigestFor("sha3-256", []byte("hello"))
	if err != nil {
		t.Fatalf("DigestFor: %v", err)
	}
	sig, err := kp.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest: %v", err)
	}

	pub, err := ParsePublicKey(kp.PublicKey())
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !pub.VerifyDigest(digest, sig) {
		t.Fatalf("signature did not verify")
	}
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "ed25519", "ed25519:????", "rsa:AAAA", "ed25519:AAAA"} {
		if _, err := ParsePublicKey(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDeriveRoleSeedDeterministic(t *testing.T) {
	root := make([]byte, ed25519.SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DeriveRoleSeed(root, RoleAccount)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	b, err := DeriveRoleSeed(root, RoleAccount)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}

	c, err := DeriveRoleSeed(root, RoleModule)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different roles to derive different seeds")
	}
}
