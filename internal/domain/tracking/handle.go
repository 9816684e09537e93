package tracking

import (
	"regexp"
	"strings"
)

// handlePrefix is the scheme marker some fulfillment integrations prepend to
// the tracking number before writing it to the order record.
const handlePrefix = "tracking:"

// minHandleLength is the shortest value any supported carrier issues.
const minHandleLength = 3

// nullSentinels are stringified-null values that leak into the tracking field
// from upstream writers. They mean "absent", never carrier input.
var nullSentinels = map[string]struct{}{
	"null":      {},
	"undefined": {},
	"nil":       {},
}

// uuidShapeRe matches the 8-4-4-4-12 hex group shape of a UUID.
var uuidShapeRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NormalizeHandle cleans a raw tracking-number field into a valid carrier
// query key. The second return value is false when the handle is definitively
// absent. A malformed handle must never reach the carrier: a call with one
// produces confusing upstream errors, so this is the single choke point that
// prevents them.
//
// A UUID-shaped value is rejected as absent as well: that shape indicates an
// internal order id was mistakenly stored in the tracking field, never a real
// carrier tracking number.
func NormalizeHandle(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(trimmed), handlePrefix) {
		trimmed = strings.TrimSpace(trimmed[len(handlePrefix):])
	}
	if trimmed == "" {
		return "", false
	}

	// Lower-cased copy for comparison only; the returned handle keeps its
	// original case.
	lowered := strings.ToLower(trimmed)
	if _, isSentinel := nullSentinels[lowered]; isSentinel {
		return "", false
	}
	if len(trimmed) < minHandleLength {
		return "", false
	}
	if uuidShapeRe.MatchString(trimmed) {
		return "", false
	}

	return trimmed, true
}
