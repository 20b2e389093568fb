package modules

import "github.com/gin-gonic/gin"

// Guards are the shared authentication and admin-role middlewares.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

// authed returns a group that requires a valid session.
func (g Guards) authed(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("", g.Auth)
}

// admin returns a group that requires an admin session.
func (g Guards) admin(rg *gin.RouterGroup) *gin.RouterGroup {
	return rg.Group("", g.Auth, g.Admin)
}
