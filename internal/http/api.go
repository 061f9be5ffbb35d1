package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"book-catalog/internal/domain"
	"book-catalog/internal/events"
	"book-catalog/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	books   service.BookService
	auth    service.AuthService
	exports service.ExportService
	feed    *events.Feed
	logger  logrus.FieldLogger
}

func NewHandler(books service.BookService, auth service.AuthService, exports service.ExportService, feed *events.Feed, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		books:   books,
		auth:    auth,
		exports: exports,
		feed:    feed,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/login", h.login)
	router.GET("/books/updates", h.bookUpdates)

	books := router.Group("/books", h.authenticate())
	{
		books.POST("", h.requirePermission(domain.PermBooksWrite), h.createBook)
		books.GET("", h.requirePermission(domain.PermBooksRead), h.listBooks)
		books.GET("/:id", h.requirePermission(domain.PermBooksRead), h.getBook)
		books.PUT("/:id", h.requirePermission(domain.PermBooksWrite), h.updateBook)
		books.DELETE("/:id", h.requirePermission(domain.PermBooksDelete), h.deleteBook)
		books.POST("/export", h.requirePermission(domain.PermBooksExport), h.exportBooks)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "WWW-Authenticate")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
