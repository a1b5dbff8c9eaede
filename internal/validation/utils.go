package validation

import "regexp"

// uuidRegex matches the canonical UUID textual form:
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID reports whether a string matches the canonical UUID form.
//
// This validates format only; it does not inspect UUID version or variant
// bits. Alternate renderings accepted by lenient parsers (braces, URN
// prefixes, missing hyphens) are rejected.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
