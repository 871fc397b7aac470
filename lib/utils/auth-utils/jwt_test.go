package authutils

import (
	"hr-admin-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Run(`claims организации и роли`, func(t *testing.T) {
		token, err := NewToken("secret", time.Hour, TokenUser{
			UserID:     3,
			Name:       "Анна",
			TenantID:   11,
			Role:       models.HRRole,
			EmployeeID: 5,
		})
		require.NoError(t, err)
		claims, err := ParseToken("secret", token)
		require.NoError(t, err)
		require.Equal(t, uint(3), ClaimUint(claims, "sub"))
		require.Equal(t, uint(11), ClaimUint(claims, "tenant"))
		require.Equal(t, uint(5), ClaimUint(claims, "employee_id"))
		require.Equal(t, "hr", ClaimString(claims, "role"))
		require.Equal(t, "Анна", ClaimString(claims, "name"))
	})
	t.Run(`чужой ключ`, func(t *testing.T) {
		token, err := NewToken("secret", time.Hour, TokenUser{UserID: 1, TenantID: 1})
		require.NoError(t, err)
		_, err = ParseToken("other", token)
		require.Error(t, err)
	})
	t.Run(`просроченный токен`, func(t *testing.T) {
		token, err := NewToken("secret", -time.Minute, TokenUser{UserID: 1, TenantID: 1})
		require.NoError(t, err)
		_, err = ParseToken("secret", token)
		require.Error(t, err)
	})
}
