package handlers

import (
	"courier/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger pulls the request-scoped logger from the Gin context, falling
// back to the shared application logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
