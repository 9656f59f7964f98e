package server

import (
	"net/http"
	"time"

	"github.com/Luismorlan/logosarena/auth"
	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/server/middlewares"
	"github.com/Luismorlan/logosarena/server/resolver"
	"github.com/Luismorlan/logosarena/storage"
	"github.com/Luismorlan/logosarena/utils/flag"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

// Server holds the collaborators of the http api. Optional collaborators
// disable their routes when nil.
type Server struct {
	Resolver *resolver.Resolver
	Auth     auth.Provider
	// Authorization code flow of the hosted login page. Optional.
	OAuth *oauth2.Config
	// Image uploads. Optional.
	Images storage.ImageStore
	// Websocket endpoint of the view invalidation signal. Optional.
	Hub http.Handler
	// Where the browser lands after login.
	AppURL string
	// Origins allowed to call the api with credentials. Empty allows every
	// origin without credentials.
	AllowOrigins []string
	// Adds the datadog tracing middleware.
	Trace bool
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Router builds the gin engine with every api route.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		Logger.Log.Errorln("panic serving ", c.Request.URL.Path, ": ", recovered)
		fail(c, &resolver.Failure{Kind: resolver.StoreError, Message: resolver.UnexpectedErrorMessage})
	}))
	router.Use(corsMiddleware(s.AllowOrigins))
	if s.Trace {
		router.Use(gintrace.Middleware(flag.ServiceName))
	}
	router.Use(middlewares.Session(s.Auth, s.Resolver))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/debates", s.listDebates)
	router.POST("/debates", s.createDebate)
	router.GET("/active-debate", s.getActiveDebate)
	router.GET("/debates/:id", s.getDebate)
	router.PUT("/debates/:id", s.updateDebate)
	router.DELETE("/debates/:id", s.deleteDebate)
	router.GET("/debates/:id/arguments", s.listArguments)

	router.POST("/arguments", s.submitArgument)
	router.PATCH("/arguments/:id", s.updateArgument)
	router.DELETE("/arguments/:id", s.deleteArgument)
	router.GET("/arguments/:id/comments", s.listComments)
	router.POST("/arguments/:id/like", s.toggleLike(model.LikeKindArgument))

	router.POST("/comments", s.postComment)
	router.PATCH("/comments/:id", s.updateComment)
	router.DELETE("/comments/:id", s.deleteComment)
	router.POST("/comments/:id/like", s.toggleLike(model.LikeKindComment))

	router.GET("/notices", s.listNotices)
	router.POST("/notices", s.createNotice)
	router.PUT("/notices/:id", s.updateNotice)
	router.DELETE("/notices/:id", s.deleteNotice)
	router.GET("/notices/:id/comments", s.listNoticeComments)
	router.POST("/notices/:id/like", s.toggleLike(model.LikeKindNotice))

	router.POST("/notice-comments", s.postNoticeComment)
	router.PATCH("/notice-comments/:id", s.updateNoticeComment)
	router.DELETE("/notice-comments/:id", s.deleteNoticeComment)
	router.POST("/notice-comments/:id/like", s.toggleLike(model.LikeKindNoticeComment))

	router.GET("/ranking", s.ranking)
	router.GET("/me", s.me)
	router.PUT("/me/username", s.updateUsername)
	router.PUT("/me/profile", s.setupProfile)
	router.PUT("/profiles/:id/role", s.setRole)

	router.POST("/reports", s.submitReport)

	if s.Images != nil {
		router.POST("/images", s.uploadImage)
	}
	if s.Hub != nil {
		router.GET("/revalidate", gin.WrapH(s.Hub))
	}
	if s.OAuth != nil {
		router.GET("/auth/login", s.login)
		router.GET("/auth/callback", s.callback)
	}
	router.POST("/auth/logout", s.logout)

	return router
}
