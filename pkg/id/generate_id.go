package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 lowercase hex characters (a v4 UUID without dashes).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewReference returns a ledger reference such as "DEP-3f9a6a1b3d54".
func NewReference(prefix string) string {
	return strings.ToUpper(prefix) + "-" + NewID32()[:12]
}
