package storage

import (
	"fmt"
	"time"

	"github.com/ipfs/go-cid"

	"wasmseal.dev/wasmseal/claims"
	"wasmseal.dev/wasmseal/wasm"
)

// VerifyingCAS admits only sealed modules: artifacts that parse as
// WebAssembly modules and carry a claims token whose signature and declared
// module hash verify.
//
// The inner store still keys strictly by byte content. Verification happens
// on both Put and Get, so a backend that serves tampered bytes is caught
// even when the CID check is bypassed upstream.
type VerifyingCAS struct {
	Inner CAS

	// Clock bounds the claims validity window check. Nil uses time.Now.
	Clock claims.Clock
}

var _ CAS = (*VerifyingCAS)(nil)

func (v VerifyingCAS) Put(bytes []byte) (cid.Cid, error) {
	if err := v.verify(bytes); err != nil {
		return cid.Undef, err
	}
	return v.Inner.Put(bytes)
}

func (v VerifyingCAS) Get(id cid.Cid) ([]byte, error) {
	b, err := v.Inner.Get(id)
	if err != nil {
		return nil, err
	}
	if err := v.verify(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (v VerifyingCAS) Has(id cid.Cid) bool {
	return v.Inner.Has(id)
}

func (v VerifyingCAS) verify(bytes []byte) error {
	token, err := wasm.ExtractClaims(bytes)
	if err != nil {
		return fmt.Errorf("storage: module rejected: %w", err)
	}
	if token == nil {
		return ErrUnsigned
	}
	now := time.Now
	if v.Clock != nil {
		now = v.Clock
	}
	if err := claims.Validate(token.Claims, now()); err != nil {
		return fmt.Errorf("storage: module rejected: %w", err)
	}
	return nil
}
