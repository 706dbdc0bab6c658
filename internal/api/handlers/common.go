package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/api/middleware"
	"github.com/yoockh/jobmate/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// FunctionError is the body the /functions/v1 endpoints return on failure.
type FunctionError struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// writeFunctionError renders {"error": msg}; withSuccess adds "success": false.
func writeFunctionError(c *gin.Context, err error, withSuccess bool) {
	body := FunctionError{Error: utils.MessageOf(err)}
	if body.Error == "" {
		body.Error = http.StatusText(utils.HTTPStatus(err))
	}
	if withSuccess {
		f := false
		body.Success = &f
	}
	c.JSON(utils.HTTPStatus(err), body)
}

func requireUserID(c *gin.Context) (string, bool) {
	if s := c.GetString(middleware.CtxUserID); s != "" {
		return s, true
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// principalFor resolves the user a function call acts for. A body userId must
// match the token subject; an empty one defaults to it.
func principalFor(c *gin.Context, bodyUserID string) (string, error) {
	sub := c.GetString(middleware.CtxUserID)
	if sub == "" {
		return "", utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil)
	}
	if bodyUserID != "" && bodyUserID != sub {
		return "", utils.E(utils.CodeForbidden, "Auth", "userId does not match the authenticated user", nil)
	}
	return sub, nil
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
