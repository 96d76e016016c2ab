package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Seat maps and availability counters are polled hard while a flight is
// selling, so cacheable GETs carry an ETag and honor If-None-Match with a
// 304 instead of re-sending the body.
func writeJSONWithCache(
	c *gin.Context,
	status int,
	v any,
	cacheControl string,
	weak bool,
) {
	body, err := json.Marshal(v)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	tag := etagFor(body, weak)
	c.Header("ETag", tag)
	if cacheControl != "" {
		c.Header("Cache-Control", cacheControl)
	}

	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(status, "application/json; charset=utf-8", body)
}

func etagFor(body []byte, weak bool) string {
	sum := sha256.Sum256(body)
	tag := `"` + hex.EncodeToString(sum[:]) + `"`
	if weak {
		return "W/" + tag
	}
	return tag
}
