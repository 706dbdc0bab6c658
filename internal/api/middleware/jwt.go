package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/auth"
	"github.com/yoockh/jobmate/internal/utils"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// JWTAuth rejects requests without a valid Supabase bearer token.
func JWTAuth(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: err.Error(),
			})
			return
		}

		u, err := v.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrNotConfigured) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
					Code:    utils.CodeConfiguration,
					Message: err.Error(),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: err.Error(),
			})
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxRole, string(u.Role))
		c.Set(CtxEmail, u.Email)
		c.Next()
	}
}

// OptionalJWT sets the principal when a valid token is present and never aborts.
func OptionalJWT(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err == nil {
			if u, verr := v.Verify(raw); verr == nil {
				c.Set(CtxUserID, u.ID)
				c.Set(CtxRole, string(u.Role))
				c.Set(CtxEmail, u.Email)
			}
		}
		c.Next()
	}
}

// TokenFromQuery copies ?<param>= into the Authorization header when the header
// is absent. Browsers cannot set headers on websocket upgrades.
func TokenFromQuery(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if t := c.Query(param); t != "" {
				c.Request.Header.Set("Authorization", "Bearer "+t)
			}
		}
		c.Next()
	}
}
