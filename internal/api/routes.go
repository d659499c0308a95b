package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/mediaguard/mediaguard/internal/api/middleware"
	"github.com/mediaguard/mediaguard/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("config/status").
			To(handler.ConfigStatus).
			Doc("Report which provider environment variables are configured").
			Metadata(restfulspec.KeyOpenAPITags, []string{"config"}).
			Writes(ConfigStatusResponse{}).
			Returns(200, "OK", ConfigStatusResponse{}))

	ws.
		Route(ws.POST("/analyze").
			To(handler.Analyze).
			Doc("Analyze an image and/or text for safety risk").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyze"}).
			Reads(models.AnalysisRequest{}).
			Writes(models.AnalysisResult{}).
			Returns(200, "OK", models.AnalysisResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/analyze/upload").
			To(handler.AnalyzeUpload).
			Doc("Analyze an uploaded image file and/or text for safety risk").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analyze"}).
			Consumes("multipart/form-data").
			Writes(models.AnalysisResult{}).
			Returns(200, "OK", models.AnalysisResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	container.Add(ws)
}
