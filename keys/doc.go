// Package keys provides the signing identities used to issue and verify
// embedded module claims.
//
// Stable:
//   - KeyPair and PublicKey (Ed25519 and Dilithium3), key-string formatting,
//     and deterministic role-seed derivation.
//
// Experimental:
//   - Filesystem-backed key storage and convenience helpers (KeyStore and
//     related functions). These are local-first utilities and are not part of
//     the long-term protocol contract.
package keys
