package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ParseOrigins splits a comma separated origin list.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// htmxHeaders are the request headers htmx adds to inspector form posts.
var htmxHeaders = []string{
	"HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger", "HX-Trigger-Name",
}

// CORSMiddleware allows the editor front ends in origins to call the API
// with credentials and htmx headers.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     append([]string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}, htmxHeaders...),
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
