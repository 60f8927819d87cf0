package mockapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "rest-user-client/internal/domain/user"
)

// Config controls the fixture server's behavior.
type Config struct {
	APIKey string // when set, requests must carry it as a bearer token
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server serves the users API contract the client expects: list, create,
// get, update, and delete over raw record payloads with store-assigned ids.
type Server struct {
	store Store
	cfg   Config
	log   *zap.Logger
}

// NewServer creates a fixture server over the given store.
func NewServer(store Store, cfg Config, log *zap.Logger) *Server {
	return &Server{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Router configures and returns a Gin engine with all routes and middleware
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "mockapi",
		})
	})

	users := router.Group("/users")
	users.Use(s.requireAPIKey())
	{
		users.GET("", s.listUsers)
		users.POST("", s.createUser)
		users.GET("/:id", s.getUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}

	return router
}

// requestLogger logs one line per request through zap
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// requireAPIKey rejects requests whose bearer token does not match the
// configured key. An empty configured key disables the check.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.APIKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") != "Bearer "+s.cfg.APIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "missing or invalid API key",
			})
			return
		}
		c.Next()
	}
}

// listUsers handles GET /users
func (s *Server) listUsers(c *gin.Context) {
	records, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// createUser handles POST /users
func (s *Server) createUser(c *gin.Context) {
	var rec domain.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.log.Warn("invalid create body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	created, err := s.store.Create(c.Request.Context(), rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getUser handles GET /users/:id
func (s *Server) getUser(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	record, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// updateUser handles PUT /users/:id
func (s *Server) updateUser(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	var rec domain.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.log.Warn("invalid update body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	updated, err := s.store.Update(c.Request.Context(), id, rec)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// deleteUser handles DELETE /users/:id
func (s *Server) deleteUser(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter, answering 400 when it is not a
// number.
func (s *Server) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "user id must be a valid number",
		})
		return 0, false
	}
	return id, true
}

// fail converts store errors to HTTP responses
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return
	}

	s.log.Error("store operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}
