package handlers

import "github.com/gin-gonic/gin"

// Name of the session cookie carrying the signed token.
const sessionCookie = "token"

// ok writes a success envelope, merging any extra fields.
func ok(c *gin.Context, code int, message string, extra gin.H) {
	resp := gin.H{"success": true, "message": message}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(code, resp)
}

// fail writes a failure envelope. Every error path uses success:false.
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// logAndFail logs the underlying error (if any) and writes a failure envelope.
func (h *Handler) logAndFail(c *gin.Context, code int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	fail(c, code, userMsg)
}

// setSessionCookie attaches the signed token as an HTTP-only cookie.
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

// clearSessionCookie empties the token cookie. The token itself stays valid
// until it expires; clearing only stops the browser from resending it.
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
