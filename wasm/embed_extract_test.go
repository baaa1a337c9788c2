package wasm

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"wasmseal.dev/wasmseal/claims"
	"wasmseal.dev/wasmseal/keys"
)

func fixedClock(sec int64) claims.Clock {
	return func() time.Time { return time.Unix(sec, 0) }
}

func testKeyPair(t *testing.T, fill byte) *keys.KeyPair {
	t.Helper()
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = fill
	}
	kp, err := keys.FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	return kp
}

func TestClaimsRoundTrip(t *testing.T) {
	raw := testModule(t)
	acct := testKeyPair(t, 0x5A)
	mod := testKeyPair(t, 0x3C)

	in := claims.Claims{
		Issuer:  acct.PublicKey(),
		Subject: mod.PublicKey(),
		Caps:    []string{"messaging", "keyvalue"},
	}
	signed, err := EmbedClaims(raw, in, acct, EmbedOptions{Clock: fixedClock(1700000000)})
	if err != nil {
		t.Fatalf("EmbedClaims: %v", err)
	}
	if len(signed) <= len(raw) {
		t.Fatalf("embedding added no bytes")
	}

	token, err := ExtractClaims(signed)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if token == nil {
		t.Fatalf("expected a token")
	}
	if token.Claims.Issuer != in.Issuer {
		t.Fatalf("issuer mismatch: %q", token.Claims.Issuer)
	}
	if len(token.Claims.Caps) != 2 || token.Claims.Caps[0] != "messaging" || token.Claims.Caps[1] != "keyvalue" {
		t.Fatalf("caps mismatch: %v", token.Claims.Caps)
	}
	if len(token.Claims.ModuleHash) != 64 || token.Claims.ModuleHash != strings.ToUpper(token.Claims.ModuleHash) {
		t.Fatalf("module hash shape: %q", token.Claims.ModuleHash)
	}
}

func TestEmbedOverwritesModuleHash(t *testing.T) {
	raw := testModule(t)
	acct := testKeyPair(t, 0x11)

	in := claims.Claims{Issuer: acct.PublicKey(), Subject: "module"}
	signed, err := EmbedClaims(raw, in, acct, EmbedOptions{Clock: fixedClock(1)})
	if err != nil {
		t.Fatalf("EmbedClaims: %v", err)
	}
	token, err := ExtractClaims(signed)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if token.Claims.ModuleHash == "" || token.Claims.ModuleHash == in.ModuleHash {
		t.Fatalf("embedding must overwrite the module hash, got %q", token.Claims.ModuleHash)
	}
}

func TestTamperDetection(t *testing.T) {
	raw := testModule(t)
	acct := testKeyPair(t, 0x22)

	signed, err := EmbedClaims(raw, claims.Claims{Issuer: acct.PublicKey(), Subject: "m"}, acct, EmbedOptions{Clock: fixedClock(1)})
	if err != nil {
		t.Fatalf("EmbedClaims: %v", err)
	}

	// Flip the function body's i32.const operand, well outside the claims
	// section.
	idx := bytes.Index(signed, []byte{0x41, 0x2A, 0x0B})
	if idx < 0 {
		t.Fatalf("fixture opcode sequence not found")
	}
	tampered := append([]byte(nil), signed...)
	tampered[idx+1] = 0x2B

	_, err = ExtractClaims(tampered)
	if err == nil {
		t.Fatalf("expected tamper to be detected")
	}
	if !IsInvalidModuleHash(err) {
		t.Fatalf("expected KindIntegrity, got %v (rule %s)", err, RuleID(err))
	}
}

func TestExtractAbsenceIsNotAnError(t *testing.T) {
	token, err := ExtractClaims(testModule(t))
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if token != nil {
		t.Fatalf("unsigned module returned a token")
	}
}

func TestExtractRejectsNonUTF8Payload(t *testing.T) {
	m, err := Parse(testModule(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m.SetCustomSection(ClaimsSectionName, []byte{0xFF, 0xFE, 0xFD})
	raw, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err = ExtractClaims(raw)
	if !IsKind(err, KindEncoding) {
		t.Fatalf("expected KindEncoding, got %v", err)
	}
}

func TestExtractRejectsMalformedToken(t *testing.T) {
	m, err := Parse(testModule(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m.SetCustomSection(ClaimsSectionName, []byte("not.a.token"))
	raw, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err = ExtractClaims(raw)
	if !IsKind(err, KindToken) {
		t.Fatalf("expected KindToken, got %v", err)
	}
}

func TestReEmbedBothVerify(t *testing.T) {
	raw := testModule(t)
	acct := testKeyPair(t, 0x44)
	c := claims.Claims{Issuer: acct.PublicKey(), Subject: "m", Caps: []string{"messaging"}}

	first, err := EmbedClaims(raw, c, acct, EmbedOptions{Clock: fixedClock(100)})
	if err != nil {
		t.Fatalf("EmbedClaims(1): %v", err)
	}
	second, err := EmbedClaims(raw, c, acct, EmbedOptions{Clock: fixedClock(200)})
	if err != nil {
		t.Fatalf("EmbedClaims(2): %v", err)
	}

	for i, signed := range [][]byte{first, second} {
		token, err := ExtractClaims(signed)
		if err != nil {
			t.Fatalf("ExtractClaims(%d): %v", i+1, err)
		}
		if token == nil {
			t.Fatalf("ExtractClaims(%d): no token", i+1)
		}
	}

	// Embedding on an already-signed buffer replaces the old token and
	// still verifies: the canonical hash excludes the claims section.
	resigned, err := EmbedClaims(first, c, acct, EmbedOptions{Clock: fixedClock(300)})
	if err != nil {
		t.Fatalf("re-EmbedClaims: %v", err)
	}
	token, err := ExtractClaims(resigned)
	if err != nil {
		t.Fatalf("ExtractClaims(resigned): %v", err)
	}
	if token == nil {
		t.Fatalf("no token after re-embed")
	}

	m, err := Parse(resigned)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	count := 0
	for _, s := range m.Sections {
		if s.ID == SectionCustom && s.Name == ClaimsSectionName {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one claims section after re-embed, got %d", count)
	}
}

func TestSignBufferWithClaims(t *testing.T) {
	raw := testModule(t)
	acct := testKeyPair(t, 0x55)
	mod := testKeyPair(t, 0x66)

	signed, err := SignBufferWithClaims(raw, SignOptions{
		AccountKeyPair: acct,
		ModuleKeyPair:  mod,
		Caps:           []string{"messaging", "keyvalue"},
		Tags:           []string{"edge"},
		ExpiresInDays:  30,
		NotBeforeDays:  1,
		Clock:          fixedClock(1700000000),
	})
	if err != nil {
		t.Fatalf("SignBufferWithClaims: %v", err)
	}

	token, err := ExtractClaims(signed)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	c := token.Claims
	if c.Issuer != acct.PublicKey() || c.Subject != mod.PublicKey() {
		t.Fatalf("identity mismatch: iss=%q sub=%q", c.Issuer, c.Subject)
	}
	if c.NotBefore != 1700000000+86400 {
		t.Fatalf("not-before: got %d", c.NotBefore)
	}
	if c.Expires != 1700000000+30*86400 {
		t.Fatalf("expires: got %d", c.Expires)
	}
	if err := claims.Validate(c, time.Unix(1700000000+2*86400, 0)); err != nil {
		t.Fatalf("in-window claims should validate: %v", err)
	}
	if err := claims.Validate(c, time.Unix(1700000000, 0)); err == nil {
		t.Fatalf("claims should not validate before the not-before bound")
	}
}

func TestSignBufferWithClaimsRequiresKeys(t *testing.T) {
	if _, err := SignBufferWithClaims(testModule(t), SignOptions{}); !IsKind(err, KindSigning) {
		t.Fatalf("expected KindSigning, got %v", err)
	}
}
