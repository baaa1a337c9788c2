// Package storage defines content-addressable storage for module artifacts.
//
// A signed module is an immutable blob: its identity is the CID of its exact
// bytes, claims section included. Stores never interpret module structure;
// the VerifyingCAS wrapper layers claim verification on top when a store
// should only admit sealed modules.
package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable storage interface.
//
// Contract:
// - Put MUST be idempotent.
// - Stored artifacts MUST be immutable.
// - CIDs MUST be derived from the bytes written (callers are responsible for supplying the exact artifact bytes).
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
