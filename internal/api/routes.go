package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		importGroup := v1.Group("/import/sessions")
		{
			importGroup.POST("", handler.CreateImportSession)
			importGroup.GET("/:id", handler.GetImportSession)
			importGroup.PUT("/:id/sheets/:idx/name", handler.RenameSheet)
			importGroup.PUT("/:id/sheets/:idx/rows/:row", handler.EditImportRow)
			importGroup.DELETE("/:id/sheets/:idx/rows/:row", handler.DeleteImportRow)
			importGroup.POST("/:id/validate", handler.ValidateImport)
			importGroup.POST("/:id/upload", handler.UploadImport)
			importGroup.DELETE("/:id", handler.CloseImportSession)
		}

		v1.GET("/masterdata/:list", handler.GetMasterData)
		v1.GET("/flights", handler.ListFlights)

		v1.POST("/staff", handler.CreateStaff)
		v1.GET("/staff", handler.ListStaff)

		v1.POST("/contracts", handler.CreateContract)
		v1.GET("/contracts", handler.ListContracts)
		v1.POST("/contracts/:id/documents", handler.UploadContractDocument)

		v1.POST("/thf", handler.CreateTHF)
		v1.GET("/thf", handler.ListTHF)
		v1.POST("/thf/:id/attachments", handler.UploadTHFAttachment)
	}
}
