package router

import (
	"symposium-agent-backend/controller"
	"symposium-agent-backend/middleware"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		public := api.Group("/user")
		{
			public.POST("/register", controller.UserRegister)
			public.POST("/login", controller.UserLogin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/symposium", controller.CreateSymposium)
			protected.GET("/symposiums", controller.GetSymposiums)
			protected.PUT("/symposium/:id", controller.UpdateSymposium)
			protected.DELETE("/symposium/:id", controller.DeleteSymposium)
			protected.GET("/symposium/:id/messages", controller.GetMessages)
			protected.GET("/symposium/:id/consultants", controller.GetConsultants)

			protected.POST("/consultant", controller.CreateConsultant)
			protected.PUT("/consultant/:id", controller.UpdateConsultant)
			protected.DELETE("/consultant/:id", controller.DeleteConsultant)
			protected.GET("/consultant/:id/api-call-logs", controller.GetAPICallLogs)
			protected.GET("/templates", controller.GetTemplates)

			protected.POST("/chat", controller.ConsultantChat)

			protected.PUT("/message/:id", controller.UpdateMessage)
			protected.DELETE("/message/:id", controller.DeleteMessage)
			protected.PUT("/message/:id/visibility", controller.SetMessageVisibility)

			protected.POST("/kb/card", controller.CreateKnowledgeCard)
			protected.GET("/kb/cards", controller.GetKnowledgeCards)
			protected.PUT("/kb/card/:id", controller.UpdateKnowledgeCard)
			protected.DELETE("/kb/card/:id", controller.DeleteKnowledgeCard)
			protected.GET("/kb/cards/search", controller.SearchKnowledgeCards)
			protected.GET("/kb/cards/semantic-search", controller.SemanticSearchKnowledgeCards)
			protected.POST("/kb/card/pin", controller.PinCard)
			protected.POST("/kb/card/unpin", controller.UnpinCard)
			protected.POST("/kb/import-markdown", controller.ImportMarkdown)
		}
	}

	return r
}
