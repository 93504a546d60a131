package mobile

import (
	"errors"
	"strings"
)

// The mobile service prepends non-JSON noise (JSP whitespace, HTML warnings)
// to its JSON payloads, so responses cannot be decoded directly. The helpers
// below carve out the JSON-shaped substring and fail explicitly when none
// exists.

var errNoJSON = errors.New("response does not contain a JSON object")

// extractJSONTail returns the substring from the last '{' to the end of the
// body. The login endpoint may emit braces inside its preamble, so only the
// trailing object is trustworthy.
func extractJSONTail(raw string) (string, error) {
	i := strings.LastIndex(raw, "{")
	if i < 0 {
		return "", errNoJSON
	}
	return raw[i:], nil
}

// extractJSONBody returns the substring spanning the first '{' through the
// last '}' of the body, which is how the timetable endpoints wrap their
// payloads.
func extractJSONBody(raw string) (string, error) {
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j < i {
		return "", errNoJSON
	}
	return raw[i : j+1], nil
}
