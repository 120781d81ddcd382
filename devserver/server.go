package devserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/form"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/session"
	"github.com/kbukum/scribe/validation"
)

// Server is the development backend: a Gin engine over the in-memory
// store plus the lifecycle simulator.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	store      *store
	signer     *signer
	inferencer Inferencer
	transcript string
	stepDelay  time.Duration
	log        *logger.Logger
}

// New creates a dev server from configuration. The default inferencer
// proposes each empty field's example value.
func New(cfg config.DevServerConfig, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.Nop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:     engine,
		store:      newStore(),
		signer:     newSigner(cfg.SignSecret),
		inferencer: exampleInferencer,
		transcript: cfg.Transcript,
		stepDelay:  cfg.StepDelay,
		log:        log.WithComponent("devserver"),
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler: engine,
		},
	}

	if cfg.AuthSecret != "" {
		engine.Use(bearerAuth(cfg.AuthSecret, "/uploads/"))
	}
	s.routes()
	return s
}

// SetInferencer replaces the simulated inference step. Call before Start.
func (s *Server) SetInferencer(inf Inferencer) {
	if inf != nil {
		s.inferencer = inf
	}
}

// Engine returns the Gin engine, for mounting under a test server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) routes() {
	s.engine.POST("/api/scribe/", s.createSession)
	s.engine.GET("/api/scribe/:id/", s.getSession)
	s.engine.PUT("/api/scribe/:id/", s.updateSession)
	s.engine.POST("/api/scribe_file/", s.createUpload)
	s.engine.PATCH("/api/scribe_file/:id/", s.completeUpload)
	s.engine.PUT("/uploads/:id", s.receiveUpload)
}

// Start binds the port and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("devserver failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	s.log.Info("Dev server started", map[string]interface{}{"addr": listener.Addr().String()})
	return nil
}

// Stop gracefully shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// --- session handlers ---

type createSessionRequest struct {
	Status   session.Status       `json:"status" validate:"required"`
	FormData []form.HydratedField `json:"form_data"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, errors.Validation("Malformed session payload.").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		respondWithError(c, err)
		return
	}

	rec := s.store.createSession(record{
		Session: session.Session{
			Status:   session.StatusCreated,
			FormData: req.FormData,
		},
		Fail: c.Query("fail") == "true",
	})
	s.log.Info("session created", map[string]interface{}{
		logger.FieldSession: rec.ExternalID,
		"fields":            len(rec.FormData),
	})
	c.JSON(http.StatusCreated, rec.Session)
}

func (s *Server) getSession(c *gin.Context) {
	rec, err := s.store.getSession(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec.Session)
}

type updateSessionRequest struct {
	Status     session.Status `json:"status" validate:"required"`
	Transcript *string        `json:"transcript"`
}

func (s *Server) updateSession(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, errors.Validation("Malformed session payload.").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	rec, err := s.store.updateSession(id, func(r *record) {
		r.Status = req.Status
		if req.Transcript != nil {
			// Transcript edit: keep the client's text, drop the stale
			// inference response, and skip transcript generation.
			r.Transcript = *req.Transcript
			r.AIResponse = ""
			r.EditedTranscript = true
		}
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.Status == session.StatusReady {
		go s.runLifecycle(id)
	}
	c.JSON(http.StatusOK, rec.Session)
}

// --- upload handlers ---

type createUploadRequest struct {
	OriginalName  string `json:"original_name" validate:"required"`
	Name          string `json:"name" validate:"required"`
	AssociatingID string `json:"associating_id" validate:"required"`
	FileCategory  string `json:"file_category"`
	MimeType      string `json:"mime_type" validate:"required"`
}

type uploadResponse struct {
	ID           string `json:"id"`
	SignedURL    string `json:"signed_url,omitempty"`
	InternalName string `json:"internal_name"`
	Completed    bool   `json:"upload_completed"`
}

func (s *Server) createUpload(c *gin.Context) {
	var req createUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, errors.Validation("Malformed upload payload.").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		respondWithError(c, err)
		return
	}
	if _, err := s.store.getSession(req.AssociatingID); err != nil {
		respondWithError(c, err)
		return
	}

	u := s.store.createUpload(upload{
		SessionID:    req.AssociatingID,
		MimeType:     req.MimeType,
		OriginalName: req.OriginalName,
	})

	expires := time.Now().Add(signedURLTTL).Unix()
	signedURL := fmt.Sprintf("http://%s/uploads/%s?expires=%d&signature=%s",
		c.Request.Host, u.ID, expires, s.signer.sign(u.ID, expires))

	c.JSON(http.StatusCreated, uploadResponse{
		ID:           u.ID,
		SignedURL:    signedURL,
		InternalName: u.InternalName,
	})
}

func (s *Server) receiveUpload(c *gin.Context) {
	id := c.Param("id")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil || !s.signer.verify(id, expires, c.Query("signature")) {
		respondWithError(c, errors.Unauthorized("Invalid or expired upload signature."))
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		respondWithError(c, errors.Validation("Empty upload body."))
		return
	}

	if _, err := s.store.updateUpload(id, func(u *upload) { u.Data = data }); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) completeUpload(c *gin.Context) {
	if c.Query("file_type") == "" || c.Query("associating_id") == "" {
		respondWithError(c, errors.Validation("file_type and associating_id query parameters are required."))
		return
	}

	u, err := s.store.getUpload(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(u.Data) == 0 {
		respondWithError(c, errors.Validation("Upload completed before any bytes were transferred."))
		return
	}
	u, err = s.store.updateUpload(u.ID, func(u *upload) { u.Completed = true })
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		ID:           u.ID,
		InternalName: u.InternalName,
		Completed:    u.Completed,
	})
}

// respondWithError derives status and body from an AppError, falling back
// to a generic 500.
func respondWithError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if e, ok := err.(*errors.AppError); ok {
		appErr = e
	} else {
		appErr = errors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}
