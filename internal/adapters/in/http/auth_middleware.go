package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/petify/reservation-slots-service/internal/core/domain"
)

const identityKey = "identity"

// IdentityClaims extends the registered claims with the roles granted by
// the auth service. The subject carries the username.
type IdentityClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTAuth validates the bearer token and stores the caller identity in
// the request context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims := &IdentityClaims{}
		parsed, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
		if err != nil || !parsed.Valid || claims.Subject == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(identityKey, domain.Actor{
			Username: claims.Subject,
			Roles:    claims.Roles,
		})
		ctx.Next()
	}
}

// RequireRoles rejects callers holding none of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !CurrentActor(ctx).HasAnyRole(roles...) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		ctx.Next()
	}
}

func CurrentActor(ctx *gin.Context) domain.Actor {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return domain.Actor{}
	}

	actor, _ := value.(domain.Actor)
	return actor
}

// IssueToken signs a token for the given identity; used by tests and
// local tooling.
func IssueToken(secret []byte, username string, roles []string, ttl time.Duration) (string, error) {
	claims := IdentityClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
