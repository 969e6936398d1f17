package middleware

import (
	"net/http"

	"imobiliaria/internal/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticate verifies the bearer credential and stores the resulting
// identity in the gin context. Every failure answers the same generic 401;
// the response never says whether the token was missing, malformed, expired
// or forged.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := auth.VerifyBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado."})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireRole denies the request unless the authenticated role equals
// required. There is no hierarchy: an admin is rejected by a broker-only
// gate. Must be mounted after Authenticate.
func RequireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado."})
			return
		}
		if ident.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
			return
		}
		c.Next()
	}
}

// GetIdentity extracts the authenticated identity set by Authenticate.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	ident, ok := v.(auth.Identity)
	return ident, ok
}
