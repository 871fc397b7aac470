package authutils

import (
	"hr-admin-backend/config"
	"hr-admin-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenUser данные пользователя, которые попадают в claims
type TokenUser struct {
	UserID     uint
	Name       string
	TenantID   uint
	Role       models.UserRole
	EmployeeID uint
}

func GetToken(user TokenUser) (tokenString string, err error) {
	ttl := time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)
	return NewToken(config.Conf.Auth.JWTSecret, ttl, user)
}

func NewToken(secret string, ttl time.Duration, user TokenUser) (tokenString string, err error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"name":        user.Name,
		"sub":         user.UserID,
		"tenant":      user.TenantID,
		"role":        string(user.Role),
		"employee_id": user.EmployeeID,
		"exp":         now.Add(ttl).Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// ClaimUint числовые claims приходят из json как float64
func ClaimUint(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		if v > 0 {
			return uint(v)
		}
	case int64:
		if v > 0 {
			return uint(v)
		}
	case uint:
		return v
	case int:
		if v > 0 {
			return uint(v)
		}
	}
	return 0
}

func ClaimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// ParseToken разбор токена без fiber, используется консолью и тестами
func ParseToken(secret, tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
