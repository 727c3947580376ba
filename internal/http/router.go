package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/internal/http/handlers"
	"github.com/sibe/identity/internal/http/middleware"
	"github.com/sibe/identity/internal/obs"
)

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	Auth        *handlers.AuthHandlers
	Accounts    *handlers.AccountHandlers
	Roles       *handlers.RoleHandlers
	AuthMW      *middleware.AuthMW
	CORSOrigins []string
}

// BuildRouter assembles the identity service route table. Authentication
// endpoints are public; everything else sits behind the session middleware
// and, where needed, a role gate.
func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), obs.RequestLogger(), obs.Instrument(), middleware.CORS(deps.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "identity"})
	})
	r.GET("/metrics", obs.Handler())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/refresh", deps.Auth.Refresh)

		protected := auth.Group("", deps.AuthMW.RequireAuth())
		{
			protected.GET("/profile", deps.Auth.Profile)
			protected.POST("/password", deps.Auth.ChangePassword)
			protected.POST("/logout", deps.Auth.Logout)
		}
	}

	accounts := api.Group("/accounts", deps.AuthMW.RequireAuth())
	{
		accounts.GET("/:id/logins", middleware.RequireSelfOrAdmin("id"), deps.Accounts.LoginHistory)
		accounts.PATCH("/:id/state", middleware.RequireAdmin(), deps.Accounts.SetState)
	}

	roles := api.Group("/roles", deps.AuthMW.RequireAuth(), middleware.RequireAdmin())
	{
		roles.GET("", deps.Roles.List)
		roles.POST("", deps.Roles.Create)
		roles.PUT("/:id", deps.Roles.Update)
		roles.DELETE("/:id", deps.Roles.Delete)
	}

	return r
}
