// Package server wires the portfolio panels, assets and contact form into a gin engine.
package server

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mujakkirdv/portfolio/internal/assets"
	"github.com/mujakkirdv/portfolio/internal/content"
	"github.com/mujakkirdv/portfolio/internal/nav"
	"github.com/mujakkirdv/portfolio/internal/render"
	"github.com/mujakkirdv/portfolio/web"
)

// Options configures a Server. Registry and Resolver are required.
type Options struct {
	Registry *content.Registry
	Resolver *assets.Resolver
	Renderer *render.Renderer
	Logger   *zap.Logger
	// Stylesheet is the asset path of the optional local stylesheet.
	Stylesheet string
}

// Server serves the portfolio pages.
type Server struct {
	registry   *content.Registry
	resolver   *assets.Resolver
	renderer   *render.Renderer
	logger     *zap.Logger
	stylesheet string

	// panels holds the pre-rendered cards of every panel; content never changes after load.
	panels map[nav.Key]panelView
	engine *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Registry == nil {
		return nil, errors.New("server: registry is required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("server: asset resolver is required")
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		registry:   opts.Registry,
		resolver:   opts.Resolver,
		renderer:   opts.Renderer,
		logger:     opts.Logger,
		stylesheet: opts.Stylesheet,
		panels:     make(map[nav.Key]panelView, len(nav.Keys())),
	}
	for _, k := range nav.Keys() {
		s.panels[k] = s.buildPanel(s.registry.Panel(k))
	}

	tmpl, err := web.Templates(template.FuncMap{})
	if err != nil {
		return nil, err
	}
	s.engine = s.routes(tmpl)
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("panic serving request", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/favicon.svg", s.favicon)
	r.GET("/resume", s.resume)
	r.GET("/images/*filepath", s.profileImage)
	r.POST("/contact", s.submitContact)

	r.GET("/", s.showPanel)
	r.GET("/:panel", s.showPanel)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 page not found")
	})
	return r
}
