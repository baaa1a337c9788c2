package wasm

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindParse covers structurally invalid module bytes (bad magic or
	// version, truncated or malformed section headers).
	KindParse Kind = "Parse"
	// KindSerialize covers internal failures reconstructing bytes from a
	// parsed module. It should not occur for modules produced by Parse.
	KindSerialize Kind = "Serialize"
	// KindEncoding covers claims section payloads that are not valid UTF-8.
	KindEncoding Kind = "Encoding"
	// KindToken covers malformed embedded tokens and signature failures
	// reported by the claims codec.
	KindToken Kind = "Token"
	// KindIntegrity is the tamper signal: the embedded claims declare a
	// module hash that does not match the module's canonical hash.
	KindIntegrity Kind = "Integrity"
	// KindSigning covers failures producing a signed token at embed time.
	KindSigning Kind = "Signing"
	// KindIO covers byte-stream read failures during hashing.
	KindIO       Kind = "IO"
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., SEAL-WASM-001, SEAL-INT-401) that
// names the violated invariant.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

// IsInvalidModuleHash reports whether err is the integrity-tamper outcome:
// the module verified structurally and cryptographically, but its canonical
// hash does not match the hash declared in the embedded claims. Callers
// should treat this differently from parse failures (tamper vs. corruption).
func IsInvalidModuleHash(err error) bool {
	return IsKind(err, KindIntegrity)
}
