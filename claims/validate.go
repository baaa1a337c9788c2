package claims

import (
	"fmt"
	"time"
)

// Validate evaluates the claims' validity window at the given instant.
// Decode verifies signatures; Validate is the separate temporal gate so
// callers can decide how stale tokens are treated.
func Validate(c Claims, now time.Time) error {
	n := now.Unix()
	if c.Expires != 0 && n > c.Expires {
		return fmt.Errorf("claims: token expired at %s", time.Unix(c.Expires, 0).UTC().Format(time.RFC3339))
	}
	if c.NotBefore != 0 && n < c.NotBefore {
		return fmt.Errorf("claims: token cannot be used before %s", time.Unix(c.NotBefore, 0).UTC().Format(time.RFC3339))
	}
	return nil
}
