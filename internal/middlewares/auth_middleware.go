package middlewares

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
	"supaboard/internal/responses"
)

const (
	SessionCookie = "session_token"
	SignInPath    = "/sign-in"

	userKey = "user"
)

type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Authenticate resolves the session cookie to a user. Requests without a
// usable session are aborted with 401 and the sign-in path.
func Authenticate(resolver UserResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)

		user, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if apperrors.KindOf(err) != apperrors.KindAuth {
				logger.Error("Failed to resolve session", zap.Error(err))
			}
			responses.Abort(c, err, gin.H{"redirect": SignInPath})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
