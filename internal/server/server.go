// ABOUTME: Sync relay HTTP service.
// ABOUTME: Exposes the auth-url, exchange-token, upload, and download endpoints.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Exchanger performs the OAuth authorization flow. Satisfied by
// OAuthConfig; tests substitute a fake.
type Exchanger interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (accessToken string, expiresAt int64, err error)
}

// Server is the sync relay. It holds the confidential OAuth credentials
// and proxies drive access for authenticated clients; it stores nothing.
type Server struct {
	router *gin.Engine
	oauth  Exchanger
	drive  Drive
}

// New creates a relay server with the given OAuth flow and drive backend.
func New(oauth Exchanger, drive Drive) *Server {
	s := &Server{
		router: gin.Default(),
		oauth:  oauth,
		drive:  drive,
	}
	s.router.Use(corsMiddleware())

	api := s.router.Group("/api/sync/google")
	{
		api.GET("/auth-url", s.handleAuthURL)
		api.POST("/exchange-token", s.handleExchangeToken)
		api.POST("/upload", s.handleUpload)
		api.GET("/download", s.handleDownload)
	}
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return s
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the underlying router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleAuthURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": s.oauth.AuthURL()})
}

func (s *Server) handleExchangeToken(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	token, expiresAt, err := s.oauth.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code exchange failed: " + err.Error()})
		return
	}

	resp := gin.H{"accessToken": token}
	if expiresAt != 0 {
		resp["expiresAt"] = expiresAt
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUpload(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	content, err := io.ReadAll(c.Request.Body)
	if err != nil || len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing snapshot body"})
		return
	}

	fileID, err := s.drive.Upload(c.Request.Context(), token, content)
	if err != nil {
		driveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileId": fileID})
}

func (s *Server) handleDownload(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	content, err := s.drive.Download(c.Request.Context(), token)
	if err != nil {
		driveError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", content)
}

// bearerToken extracts the access token from the Authorization header,
// answering 401 itself when absent.
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return "", false
	}
	return token, true
}

func driveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTokenRejected):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoRemoteFile):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
