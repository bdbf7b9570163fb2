package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

// Issue signs an HS256 access token for the principal.
func Issue(secret string, p domain.Principal, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.UserID,
		"role":    string(p.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if p.StudentID != "" {
		claims["student_id"] = p.StudentID
	}
	if p.Class != "" {
		claims["class"] = p.Class
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func Parse(secret, raw string) (domain.Principal, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || strings.Contains(err.Error(), "expired") {
			return domain.Principal{}, ErrExpired
		}
		return domain.Principal{}, ErrInvalid
	}
	if !t.Valid {
		return domain.Principal{}, ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, ErrInvalid
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)
	role, okRole := domain.ParseRole(roleStr)
	if userID == "" || !okRole {
		return domain.Principal{}, ErrInvalid
	}

	p := domain.Principal{UserID: userID, Role: role}
	p.StudentID, _ = claims["student_id"].(string)
	p.Class, _ = claims["class"].(string)
	if role != domain.RoleTeacher && p.StudentID == "" {
		return domain.Principal{}, ErrInvalid
	}
	return p, nil
}
