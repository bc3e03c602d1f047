package api

import (
	"FundingIntel/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRouter 配置和返回一个 Gin 引擎实例。
func SetupRouter(h *Handler, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Discard()
	}
	r := gin.New()
	r.Use(RequestContext(log), Recovery())

	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/home", h.Home)
		apiV1.GET("/search", h.Search)
		apiV1.GET("/search/ranked", h.RankedSearch)
		apiV1.GET("/catalog/:id", h.GetItem)

		chat := apiV1.Group("/chat")
		{
			chat.GET("/sessions", h.ListSessions)
			chat.POST("/sessions", h.NewSession)
			chat.GET("/sessions/:id", h.GetSession)
			chat.DELETE("/sessions/:id", h.DeleteSession)
			chat.POST("/sessions/:id/star", h.ToggleStar)
			chat.POST("/sessions/:id/select", h.SelectSession)
			chat.POST("/messages", h.SendMessage)
		}

		saved := apiV1.Group("/saved")
		{
			saved.GET("", h.ListSaved)
			saved.POST("/toggle", h.ToggleSaved)
		}

		analyze := apiV1.Group("/analyze")
		{
			analyze.POST("/document", h.AnalyzeDocument)
			analyze.POST("/url", h.AnalyzeURL)
			analyze.POST("/investor", h.AnalyzeInvestor)
			analyze.GET("/latest", h.LatestAnalysis)
			analyze.POST("/reset", h.ResetAnalysis)
		}

		settings := apiV1.Group("/settings")
		{
			settings.GET("", h.GetSettings)
			settings.PUT("", h.UpdateSettings)
			settings.POST("/tutorial/dismiss", h.DismissTutorial)
		}

		notifications := apiV1.Group("/notifications")
		{
			notifications.GET("", h.ListNotifications)
			notifications.POST("/read", h.MarkNotificationsRead)
		}

		apiV1.POST("/speech", h.Speech)
	}

	return r
}
