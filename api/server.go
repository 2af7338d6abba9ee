package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/api/controllers"
	"github.com/mediavault/mediavault/api/middlewares"
	"github.com/mediavault/mediavault/api/notifyhub"
	"github.com/mediavault/mediavault/notify"
	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

// Server is the HTTP API server over a single media root.
type Server struct {
	cfg      types.AppConfig
	store    *storage.FolderStore
	deleter  *storage.DeletionService
	recorder *storage.MetadataRecorder
	hub      *notifyhub.Hub
	buffer   *notify.Buffer
	engine   *gin.Engine
	server   *http.Server
	mu       sync.RWMutex
}

// NewServer wires the storage layer, metadata recorder and notification hub
// for the given config.
func NewServer(cfg types.AppConfig) (*Server, error) {
	recorder, err := storage.NewMetadataRecorder(cfg.DatabaseDSN)
	if err != nil {
		// Metadata is a write-only audit trail; an unreachable database must
		// not keep media browsing and uploads from working.
		tool.DefaultLogger.Warnf("Metadata recording disabled: %v", err)
		recorder = nil
	}

	hub := notifyhub.New()
	return &Server{
		cfg:      cfg,
		store:    storage.NewFolderStore(cfg.MediaRoot),
		deleter:  storage.NewDeletionService(cfg.MediaRoot),
		recorder: recorder,
		hub:      hub,
		buffer:   notify.NewBuffer(hub),
	}, nil
}

// NotificationBuffer exposes the server's transient-status buffer.
func (s *Server) NotificationBuffer() *notify.Buffer {
	return s.buffer
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	engine.Use(middlewares.AllowAllCORS())
	engine.Use(middlewares.RateLimit(s.cfg.RateLimitRPS, s.cfg.RateBurst))
	engine.Use(gin.Recovery())

	authCtrl := controllers.NewAuthController(s.cfg.AccessCode)
	folderCtrl := controllers.NewFolderController(s.store, s.recorder)
	uploadCtrl := controllers.NewUploadController(s.store, s.recorder, s.buffer)
	deleteCtrl := controllers.NewDeleteController(s.deleter)
	qrCtrl := controllers.NewQRCodeController(fmt.Sprintf("http://0.0.0.0:%d/", s.cfg.Port))

	engine.POST("/api/auth", authCtrl.HandleAuth)
	engine.GET("/api/qr", qrCtrl.HandleQRCode)

	authed := engine.Group("/api", middlewares.RequireAccessCode(s.cfg.AccessCode))
	{
		authed.GET("/folders", folderCtrl.HandleList)
		authed.POST("/folders", folderCtrl.HandleCreate)
		authed.POST("/upload", uploadCtrl.HandleUpload)
		authed.DELETE("/files", deleteCtrl.HandleDeleteOne)
		authed.DELETE("/files/bulk", deleteCtrl.HandleDeleteBulk)
		authed.DELETE("/files/all", deleteCtrl.HandleDeleteAll)
		authed.GET("/notify-ws", notifyhub.HandleNotifyWS(s.hub))
	}

	// Media bytes are served straight from the root. Browsers load
	// <img>/<video> tags without headers, so this stays outside the
	// bearer gate.
	engine.Static("/media", s.cfg.MediaRoot)

	return engine
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	engine := s.setupRoutes()

	s.mu.Lock()
	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: engine,
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Media server running on port %d", s.cfg.Port)
	tool.DefaultLogger.Infof("Access code: %s", s.cfg.AccessCode)
	return s.server.ListenAndServe()
}

// Close releases server resources.
func (s *Server) Close() error {
	return s.recorder.Close()
}
