package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/ipfs/go-cid"

	"wasmseal.dev/wasmseal/caps"
	"wasmseal.dev/wasmseal/cidutil"
	"wasmseal.dev/wasmseal/keys"
	"wasmseal.dev/wasmseal/wasm"
)

// memCAS is a map-backed store for exercising the wrappers in this package.
type memCAS struct {
	blocks map[string][]byte
}

func newMemCAS() *memCAS { return &memCAS{blocks: map[string][]byte{}} }

func (m *memCAS) Put(data []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(data)
	if err != nil {
		return cid.Undef, err
	}
	m.blocks[id.String()] = append([]byte(nil), data...)
	return id, nil
}

func (m *memCAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	b, ok := m.blocks[id.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *memCAS) Has(id cid.Cid) bool {
	_, ok := m.blocks[id.String()]
	return ok
}

// minimalModule is a serialized one-function module.
func minimalModule() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6D, // magic
		0x01, 0x00, 0x00, 0x00, // version
		0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7F, // type
		0x03, 0x02, 0x01, 0x00, // function
		0x0A, 0x06, 0x01, 0x04, 0x00, 0x41, 0x2A, 0x0B, // code
	}
}

func signedModule(t *testing.T, clock func() time.Time) []byte {
	t.Helper()
	account, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate account: %v", err)
	}
	module, err := keys.Generate()
	if err != nil {
		t.Fatalf("Generate module: %v", err)
	}
	signed, err := wasm.SignBufferWithClaims(minimalModule(), wasm.SignOptions{
		AccountKeyPair: account,
		ModuleKeyPair:  module,
		Caps:           []string{caps.KeyValue},
		ExpiresInDays:  30,
		Clock:          clock,
	})
	if err != nil {
		t.Fatalf("SignBufferWithClaims: %v", err)
	}
	return signed
}

func TestVerifyingCASAdmitsSealedModule(t *testing.T) {
	inner := newMemCAS()
	v := VerifyingCAS{Inner: inner}

	signed := signedModule(t, nil)
	id, err := v.Put(signed)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !v.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := v.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(signed) {
		t.Fatalf("round trip mismatch")
	}
}

func TestVerifyingCASRejectsUnsigned(t *testing.T) {
	v := VerifyingCAS{Inner: newMemCAS()}
	if _, err := v.Put(minimalModule()); !errors.Is(err, ErrUnsigned) {
		t.Fatalf("Put unsigned: want ErrUnsigned, got %v", err)
	}
}

func TestVerifyingCASRejectsTamperedBytesOnGet(t *testing.T) {
	inner := newMemCAS()
	v := VerifyingCAS{Inner: inner}

	signed := signedModule(t, nil)
	id, err := v.Put(signed)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Corrupt the stored code section behind the wrapper's back. The
	// declared module hash no longer matches what the bytes hash to.
	stored := inner.blocks[id.String()]
	for i := 0; i+2 < len(stored); i++ {
		if stored[i] == 0x41 && stored[i+1] == 0x2A && stored[i+2] == 0x0B {
			stored[i+1] = 0x2B
			break
		}
	}

	if _, err := v.Get(id); err == nil {
		t.Fatalf("Get: expected tamper rejection")
	}
}

func TestVerifyingCASRejectsExpiredToken(t *testing.T) {
	past := func() time.Time { return time.Now().AddDate(0, -2, 0) }
	signed := signedModule(t, past) // expired a month ago

	v := VerifyingCAS{Inner: newMemCAS()}
	if _, err := v.Put(signed); err == nil {
		t.Fatalf("Put: expected expiry rejection")
	}
}

func TestMultiCASFallsBackOnReads(t *testing.T) {
	primary := newMemCAS()
	secondary := newMemCAS()

	id, err := secondary.Put([]byte("only in secondary"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	m := MultiCAS{Adapters: []CAS{primary, secondary}}
	got, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "only in secondary" {
		t.Fatalf("payload mismatch")
	}
	if !m.Has(id) {
		t.Fatalf("Has: expected true")
	}

	// Writes land only in the first adapter.
	wid, err := m.Put([]byte("written via multi"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !primary.Has(wid) {
		t.Fatalf("expected write in primary")
	}
	if secondary.Has(wid) {
		t.Fatalf("unexpected write in secondary")
	}
}

func TestReplicatingCASWritesEverywhere(t *testing.T) {
	a := newMemCAS()
	b := newMemCAS()
	r := ReplicatingCAS{Backends: []NamedCAS{{Name: "a", CAS: a}, {Name: "b", CAS: b}}}

	id, err := r.Put([]byte("replicated"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !a.Has(id) || !b.Has(id) {
		t.Fatalf("expected payload in every backend")
	}
	got, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "replicated" {
		t.Fatalf("payload mismatch")
	}
}
