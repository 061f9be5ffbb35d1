package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"book-catalog/internal/domain"
	"book-catalog/internal/service"
)

const contextKeyUser = "auth_user"

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// login accepts form-encoded or JSON credentials.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeError(c, bindingError(err))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WithField("username", req.Username).Info("login rejected")
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadLogin})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(token.ExpiresAt).Seconds()),
	})
}

// authenticate resolves the bearer token to a user or aborts with 401.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, err := h.auth.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				abortUnauthorized(c)
				return
			}
			h.writeError(c, err)
			c.Abort()
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// requirePermission must run after authenticate.
func (h *Handler) requirePermission(perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if err := h.auth.Authorize(user, perm); err != nil {
			username := ""
			if user != nil {
				username = user.Username
			}
			h.logger.WithFields(logrus.Fields{
				"username":   username,
				"permission": perm,
			}).Info("permission denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
