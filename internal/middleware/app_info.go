package middleware

import (
	"github.com/skyring/file-explorer-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func AppInfo(name string, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
