package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mass-chat/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	limiter service.RateLimiter,
	chatH *ChatHandler,
	agentH *AgentHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "api"})
	})

	// La cuota solo protege el punto de entrada conversacional.
	chat := r.Group("/chat", rateLimitMiddleware(limiter))
	chat.POST("/messages", chatH.CreateMessage)
	chat.POST("/messages/stream", chatH.CreateMessageStream)
	chat.GET("/conversations", chatH.ListConversations)
	chat.GET("/conversations/:id", chatH.GetConversation)
	chat.DELETE("/conversations/:id", chatH.DeleteConversation)

	agents := r.Group("/agents")
	agents.GET("", agentH.ListAgents)
	agents.GET("/:type/capabilities", agentH.GetAgentCapabilities)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// rateLimitMiddleware aplica la puerta de admisión por clave de cliente y
// responde 429 con Retry-After cuando la cuota se agota.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Admit(clientKey(c))
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  "Too Many Requests",
				"detail": "Rate limit exceeded. Please try again shortly.",
			})
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		return v
	}
	if v := c.GetHeader("X-Real-IP"); v != "" {
		return v
	}
	if c.Request.Host != "" {
		return c.Request.Host
	}
	return "global"
}
