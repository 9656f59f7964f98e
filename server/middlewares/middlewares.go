package middlewares

import (
	"context"
	"strings"

	"github.com/Luismorlan/logosarena/auth"
	"github.com/Luismorlan/logosarena/model"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// TokenCookie carries the access token for browser sessions.
	TokenCookie = "arena_token"

	identityKey = "arena_identity"

	// Number of identities Session remembers as having a profile.
	ensuredCacheSize = 4096
)

// ProfileEnsurer creates the profile of an identity seen for the first time.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, ident *model.Identity) (*model.Profile, error)
}

// Token returns the access token of the request, looking at the
// "Authorization: Bearer" header first and the session cookie second.
func Token(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Session resolves the request token into an identity and stores it on the
// context. Requests without a valid token continue anonymously, handlers
// decide whether a session is required. A profile is ensured once per
// identity; failed attempts are retried on the next request.
func Session(provider auth.Provider, profiles ProfileEnsurer) gin.HandlerFunc {
	ensured, err := lru.New(ensuredCacheSize)
	if err != nil {
		panic(err)
	}
	return func(c *gin.Context) {
		token := Token(c)
		if token == "" {
			c.Next()
			return
		}

		ident, err := provider.GetUser(c.Request.Context(), token)
		if err != nil {
			Logger.Log.Info("rejected session token: ", err)
			c.Next()
			return
		}

		if profiles != nil && !ensured.Contains(ident.Id) {
			if _, err := profiles.EnsureProfile(c.Request.Context(), ident); err != nil {
				Logger.Log.Errorln("failed to ensure profile of ", ident.Id, ": ", err)
			} else {
				ensured.Add(ident.Id, struct{}{})
			}
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// Identity returns the caller identity set by Session, nil for anonymous
// callers.
func Identity(c *gin.Context) *model.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*model.Identity)
	return ident
}
