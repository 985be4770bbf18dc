package user

import (
	"testing"

	"storefront/internal/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantErr bool
	}{
		{"seeded customer", dto.LoginRequest{Email: "ava@storefront.dev", Password: "password123"}, false},
		{"seeded admin", dto.LoginRequest{Email: "elliot@storefront.dev", Password: "admin123"}, false},
		{"malformed email", dto.LoginRequest{Email: "ava-at-storefront", Password: "x"}, true},
		{"missing password", dto.LoginRequest{Email: "ava@storefront.dev"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
