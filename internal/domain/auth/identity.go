package auth

import "strings"

// SystemCreator is recorded when a write carries no usable identity.
const SystemCreator = "sistema"

// CreatorFromClaims picks the identity recorded on registry writes: the
// token email, then the user id, then SystemCreator.
func CreatorFromClaims(claims map[string]interface{}) string {
	for _, key := range []string{"email", "user_id"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return SystemCreator
}
