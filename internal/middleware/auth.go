package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/auth"
)

// IdentityKey is the gin context key the resolved user is attached under.
const IdentityKey = "identity"

const (
	userCacheTTL     = 30 * time.Second
	userCacheCleanup = time.Minute
)

type AuthMiddleware struct {
	tokens *auth.TokenService
	users  repository.UserRepository
	cache  *gocache.Cache
}

func NewAuthMiddleware(tokens *auth.TokenService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		cache:  gocache.New(userCacheTTL, userCacheCleanup),
	}
}

// Resolve attaches the authenticated user to the context when the request
// carries a valid bearer token. It never rejects: requests without a token,
// or with a bad one, simply proceed without an identity, and the handlers
// that need one respond 401 themselves.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			c.Next()
			return
		}

		user, err := m.lookupUser(c, claims.Email)
		if err != nil {
			c.Next()
			return
		}

		c.Set(IdentityKey, user)
		c.Next()
	}
}

// lookupUser caches token-email resolutions for a short TTL so a busy
// client does not cost one user query per request.
func (m *AuthMiddleware) lookupUser(c *gin.Context, email string) (*model.User, error) {
	if cached, ok := m.cache.Get(email); ok {
		return cached.(*model.User), nil
	}
	user, err := m.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		return nil, err
	}
	m.cache.Set(email, user, gocache.DefaultExpiration)
	return user, nil
}

// CurrentUser returns the identity attached by Resolve, if any.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
