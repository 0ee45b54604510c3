package controller

import (
	"net"
	"net/http"
	"strings"

	"blog-ui/web/entity"
	"blog-ui/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonResult translates a registry result straight into the response
// envelope, carrying its status code through.
func jsonResult(c *gin.Context, result service.Result) {
	c.JSON(result.Status, entity.Msg{
		Success: result.OK(),
		Msg:     result.Msg,
	})
}

// jsonObj sends a 200 response with an object payload.
func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Obj:     obj,
	})
}

// pureJsonMsg sends a message response with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
