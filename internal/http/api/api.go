package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathsapp/backend/internal/http/middleware"
	"github.com/pathsapp/backend/internal/model"
)

// APIError carries an HTTP status and a client-safe message from a handler
// back to the resolver.
type APIError struct {
	Code    int
	Message string
}

// Errorf builds an APIError for a status code.
func Errorf(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

type HandlerFunc func(ctx *gin.Context) (any, *APIError)
type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)

// ResolveEndpoint adapts a typed handler to gin: the result is written as
// JSON with status 200, errors with their carried status.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpointWithAuth additionally hands the handler the session user
// resolved by the SessionAuth middleware.
func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
