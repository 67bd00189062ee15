package libraryserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handlers of every API group.
type ApiHandleFunctions struct {
	DesignAPI    DesignAPI
	MeetingAPI   MeetingAPI
	DashboardAPI DashboardAPI
}

// NewRouter returns a new router with gin's default logger and recovery.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine. Middleware registered on the
// engine before this call applies to every route.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(RequestID())
	api := router.Group("/api", NoStore())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		group := &router.RouterGroup
		pattern := route.Pattern
		if strings.HasPrefix(pattern, "/api/") {
			group = api
			pattern = strings.TrimPrefix(pattern, "/api")
		}
		group.Handle(route.Method, pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Health", http.MethodGet, "/healthz", Health},
		{"ListDesigns", http.MethodGet, "/api/designs", handleFunctions.DesignAPI.ListDesigns},
		{"GetDesignById", http.MethodGet, "/api/designs/:designId", handleFunctions.DesignAPI.GetDesignById},
		{"DeleteDesign", http.MethodDelete, "/api/designs/:designId", handleFunctions.DesignAPI.DeleteDesign},
		{"ListMeetings", http.MethodGet, "/api/meetings", handleFunctions.MeetingAPI.ListMeetings},
		{"RecordMeeting", http.MethodPost, "/api/meetings", handleFunctions.MeetingAPI.RecordMeeting},
		{"GetMeetingById", http.MethodGet, "/api/meetings/:meetingId", handleFunctions.MeetingAPI.GetMeetingById},
		{"GetStats", http.MethodGet, "/api/stats", handleFunctions.DashboardAPI.GetStats},
	}
}
