package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"anthrostat/adapters/dataset"
	"anthrostat/app"
	"anthrostat/internal"

	"github.com/gin-gonic/gin"
)

// Server is the explorer's web server: one HTML page plus the JSON API the
// page's canvas rendering pulls from.
type Server struct {
	router    *gin.Engine
	data      *dataset.Dataset
	classify  *app.ClassificationService
	plots     *app.PlotService
	templates *template.Template
	embedded  embed.FS
	log       *internal.Logger
}

// NewServer wires the server against the embedded templates/static assets.
func NewServer(embedded embed.FS, data *dataset.Dataset,
	classifySvc *app.ClassificationService, plotSvc *app.PlotService) (*Server, error) {

	s := &Server{
		router:   gin.Default(),
		data:     data,
		classify: classifySvc,
		plots:    plotSvc,
		embedded: embedded,
		log:      internal.DefaultLogger,
	}

	templates, err := template.ParseFS(embedded, "ui/templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = templates
	s.router.SetHTMLTemplate(templates)

	static, err := fs.Sub(embedded, "ui/static")
	if err != nil {
		return nil, err
	}
	s.router.StaticFS("/static", http.FS(static))

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api")
	{
		api.GET("/measurements", s.handleMeasurements)
		api.POST("/classify", s.handleClassify)
		api.GET("/plot/histogram", s.handleHistogram)
		api.GET("/plot/density", s.handleDensity)
		api.GET("/plot/scatter", s.handleScatter)
		api.GET("/plot/contour", s.handleContour)
	}
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("explorer listening on %s", addr)
	return s.router.Run(addr)
}
