package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatorFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		want   string
	}{
		{"email wins", map[string]interface{}{"email": "rrhh@example.com", "user_id": "u-1"}, "rrhh@example.com"},
		{"user id fallback", map[string]interface{}{"email": " ", "user_id": "u-1"}, "u-1"},
		{"non-string ignored", map[string]interface{}{"email": 42}, SystemCreator},
		{"nil claims", nil, SystemCreator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreatorFromClaims(tt.claims))
		})
	}
}
