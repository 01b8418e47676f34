// This file implements format validation helpers used during instance
// validation. Only the uri format is checked; unknown formats are carried
// but not enforced.

package validator

import (
	"net/url"
	"strings"
)

// isValidURI performs syntactic URI validation using the standard
// library's url.Parse. Absolute URIs (any scheme) and absolute-path
// references are accepted; bare strings without URI structure are not.
func isValidURI(s string) bool {
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if u.Scheme != "" {
		return true
	}
	return strings.HasPrefix(s, "/")
}
