package router

import (
	"MCQ-Generator-Backend/internal/api"
	"MCQ-Generator-Backend/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func SetupRouter(mcqHandler *api.MCQHandler, corsCfg config.CORSConfig, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(api.RequestID(), api.AccessLog(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if corsCfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsCfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, api.RequestIDHeader, "Content-Type")
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, "Content-Disposition", api.RequestIDHeader)
	r.Use(cors.New(corsConfig))

	r.POST("/generate-mcqs", mcqHandler.GenerateMCQsHandler)
	r.POST("/download-pdf", mcqHandler.DownloadPDFHandler)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	return r
}
