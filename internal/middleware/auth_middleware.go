package middleware

import (
	"errors"
	"strings"

	autherrors "github.com/andreicionca/motivare-absente/internal/auth/errors"
	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/shared/contextutil"
	"github.com/andreicionca/motivare-absente/internal/shared/response"
	"github.com/andreicionca/motivare-absente/internal/shared/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

// AuthMiddleware reads the access token from the Authorization header or the
// access_token cookie and stores the principal on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			errObj := autherrors.ErrTokenNotFound
			response.Abort(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
			return
		}

		p, err := token.Parse(secret, tokenString)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Abort(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
			return
		}

		c.Set(principalKey, p)
		c.Set("user_id", p.UserID)
		c.Set("role", string(p.Role))
		c.Set("student_id", p.StudentID)
		c.Set("class", p.Class)

		ctx := contextutil.WithUserID(c.Request.Context(), p.UserID)
		ctx = contextutil.WithRole(ctx, string(p.Role))
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", p.UserID),
			zap.String("role", string(p.Role)),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Principal returns the authenticated caller set by AuthMiddleware.
func Principal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// SetPrincipal is used by tests and internal callers that bypass token parsing.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID)
	c.Set("role", string(p.Role))
	c.Set("student_id", p.StudentID)
	c.Set("class", p.Class)
}

func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			errObj := autherrors.ErrForbidden
			response.Abort(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
			return
		}

		for _, role := range allowedRoles {
			if p.Role == role {
				c.Next()
				return
			}
		}

		errObj := autherrors.ErrForbidden
		response.Abort(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
	}
}
