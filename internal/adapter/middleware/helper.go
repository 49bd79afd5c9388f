package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// epoch values above this are milliseconds
const epochMillisFloor = 1e12

var errRequestAtFormat = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")

func bodyHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey scopes a request id to the route and the caller.
func buildKey(method, path, scope, requestID string) string {
	return strings.Join([]string{strings.ToLower(method), path, scope, requestID}, ":")
}

// validReqID accepts a dashed RFC 4122 uuid (versions 1-5) or 32 hex chars.
func validReqID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) != 36 {
		return reHex32.MatchString(id)
	}
	u, err := uuid.Parse(id)
	if err != nil || u.Variant() != uuid.RFC4122 {
		return false
	}
	v := u.Version()
	return v >= 1 && v <= 5
}

// parseRequestAt reads epoch seconds, epoch milliseconds or an RFC3339
// timestamp carrying a zone. Naive local times are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > epochMillisFloor {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errRequestAtFormat
	}
	return t.UTC(), nil
}
