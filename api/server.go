package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/OldStager01/attrition-advisor/api/handlers"
	"github.com/OldStager01/attrition-advisor/api/middleware"
	"github.com/OldStager01/attrition-advisor/api/websocket"
	_ "github.com/OldStager01/attrition-advisor/docs"
	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/events"
	"github.com/OldStager01/attrition-advisor/internal/report"
	"github.com/OldStager01/attrition-advisor/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	advisor    *advisor.Advisor
	session    *advisor.Session
	exporter   *report.Exporter
	wsHub      *websocket.Hub
	wsBridge   *websocket.EventBridge
}

// NewServer wires the form session, the JSON API and the live channel
// around an already loaded advisor. bus may be nil, in which case pages
// only see state on connect.
func NewServer(cfg *config.Config, adv *advisor.Advisor, bus *events.EventBus) *Server {
	switch cfg.App.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(handlers.Templates())

	exporter := report.NewExporter(report.Options{
		Title:  cfg.Report.Title,
		Footer: cfg.Report.Footer,
	})
	session := advisor.NewSession(adv, exporter, events.NewPublisher(bus))
	wsHub := websocket.NewHub(&cfg.WebSocket)

	s := &Server{
		router:   router,
		config:   cfg,
		advisor:  adv,
		session:  session,
		exporter: exporter,
		wsHub:    wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	// Forward session transitions to open pages
	if bus != nil {
		s.wsBridge = websocket.NewEventBridge(wsHub, bus.SubscribeAll())
		s.wsBridge.Start()
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSConfigFrom(s.config.API.CORS)))
	s.router.Use(middleware.RequestLogger("/health", "/health/live", "/health/ready", s.config.Metrics.Path))
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestSizeLimit(s.config.API.MaxBodyBytes))
}

func (s *Server) setupRoutes() {
	model := s.advisor.ModelInfo()
	filename := s.config.Report.Filename

	// Handlers
	healthHandler := handlers.NewHealthHandler(model)
	formHandler := handlers.NewAdvisorHandler(s.session, model, filename)
	predictionHandler := handlers.NewPredictionHandler(s.advisor, s.exporter, filename)

	// Health
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	// Interactive form
	s.router.GET("/", formHandler.Index)
	s.router.POST("/profile", formHandler.UpdateProfile)
	s.router.POST("/predict", formHandler.Predict)
	s.router.POST("/report", formHandler.GenerateReport)
	s.router.GET("/report", formHandler.DownloadReport)

	// WebSocket route
	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub, s.session))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/predict", predictionHandler.Predict)
		v1.POST("/report", predictionHandler.Report)
		v1.GET("/model", predictionHandler.Model)
	}

	if s.config.Metrics.Enabled {
		s.router.GET(s.config.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.API.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  s.config.API.IdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the event bridge first
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}
	s.wsHub.Stop()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Session() *advisor.Session {
	return s.session
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
