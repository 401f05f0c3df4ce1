package auth

import "github.com/gin-gonic/gin"

// Identity is the authenticated caller, produced once by the token middleware
// and read by every handler.
type Identity struct {
	ID       string
	IsSeller bool
}

const identityKey = "identity"

// SetIdentity stores the caller identity on the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller identity set by the token middleware.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
