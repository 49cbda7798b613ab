package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nimbus-rentals/service-rental/internal/middleware"
	"github.com/nimbus-rentals/service-rental/internal/response"
)

// IdentityHandler echoes the authenticated identity, mainly for credential
// debugging.
type IdentityHandler struct{}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// RegisterRoutes registers the identity route on the given router group.
func (h *IdentityHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.GET("/identity", authMW, h.GetIdentity)
}

// GetIdentity handles GET /identity.
func (h *IdentityHandler) GetIdentity(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	response.Success(c, identity)
}
