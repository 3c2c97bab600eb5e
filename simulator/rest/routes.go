package rest

import (
	"context"
	"net/http"

	docs "github.com/Gthulhu/schedsim/docs/simulator"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	docs.SwaggerInfo.BasePath = "/"
	engine.GET("/swagger/*", echoSwagger.WrapHandler)

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		// auth routes
		apiV1.POST("/auth/token", h.echoHandler(h.GenToken))

		// simulation routes
		simulations := apiV1.Group("/simulations", echo.WrapMiddleware(h.AuthMiddleware))
		simulations.POST("", h.echoHandler(h.CreateSimulation))
		simulations.POST("/compare", h.echoHandler(h.CompareSimulations))
		simulations.GET("", h.echoHandler(h.ListSimulations))
		simulations.GET("/:runID", h.echoHandlerWithParams(h.GetSimulation))
		simulations.GET("/:runID/gantt", h.echoHandlerWithParams(h.GetSimulationGantt))
		simulations.DELETE("/:runID", h.echoHandlerWithParams(h.DeleteSimulation))
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}

// echoHandlerWithParams wraps a handler function and injects path parameters into request context
func (h *Handler) echoHandlerWithParams(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(name), c.Param(name)))
		}
		handlerFunc(c.Response().Writer, r)
		return nil
	}
}

// pathParamKey is a type for path parameter context keys
type pathParamKey string

// GetPathParam retrieves a path parameter from request context
func (h *Handler) GetPathParam(r *http.Request, name string) string {
	if val, ok := r.Context().Value(pathParamKey(name)).(string); ok {
		return val
	}
	return ""
}
