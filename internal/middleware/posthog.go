package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/drycleaner_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// productEvents maps shop actions to analytics event names. Routes missing
// here are only tracked when they mutate state.
var productEvents = map[string]string{
	"POST /api/v1/invoices":                     "invoice_created",
	"PATCH /api/v1/invoices/:id":                "invoice_updated",
	"DELETE /api/v1/invoices/:id":               "invoice_deleted",
	"PATCH /api/v1/invoices/:id/status":         "invoice_status_changed",
	"PATCH /api/v1/invoices/:id/paid":           "invoice_paid_changed",
	"PATCH /api/v1/invoices/:id/payment-method": "invoice_payment_recorded",
	"POST /api/v1/clients":                      "client_created",
	"PATCH /api/v1/clients/:id":                 "client_updated",
	"DELETE /api/v1/clients/:id":                "client_deleted",
	"GET /api/v1/clients/:id/insights":          "client_insights_viewed",
	"GET /api/v1/reports/summary":               "report_viewed",
	"POST /api/v1/system/reset":                 "system_reset",
	"POST /api/v1/admin/users":                  "staff_user_created",
}

// untrackedPrefixes never produce events.
var untrackedPrefixes = []string{"/health", "/metrics", "/swagger", "/api/v1/ws"}

// eventName returns the analytics event for a matched route, or "" when the
// request is not worth tracking (reads, polling, unmatched paths).
func eventName(method, route string) string {
	if route == "" {
		return ""
	}
	if name, ok := productEvents[method+" "+route]; ok {
		return name
	}
	if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
		return ""
	}
	name := strings.TrimPrefix(route, "/api/v1/")
	name = strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(name)
	return strings.ToLower(method) + "_" + name
}

// PosthogMiddleware reports successful authenticated actions to PostHog,
// keyed by the acting user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || isUntracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event := eventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}
		// Set by AuthMiddleware on the replaced request.
		actor, ok := GetActorFromCtx(c.Request.Context())
		if !ok || actor.UserID == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
			"role":        string(actor.Role),
		}
		if id := c.Param("id"); id != "" {
			props["resource_id"] = id
		}
		posthogClient.Enqueue(actor.UserID, event, props)
	}
}

func isUntracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
