// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"registry/internal/delivery/http/middleware"
	"registry/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middlewares injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	FacilityHandler *handler.FacilityHandler
	LookupHandler   *handler.LookupHandler
	GeocodeHandler  *handler.GeocodeHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	facilityHandler *handler.FacilityHandler
	lookupHandler   *handler.LookupHandler
	geocodeHandler  *handler.GeocodeHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		facilityHandler: params.FacilityHandler,
		lookupHandler:   params.LookupHandler,
		geocodeHandler:  params.GeocodeHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public read-only routes
	publicGroup := api.Group("/public")
	{
		publicGroup.GET("/facilities", r.facilityHandler.ListPublic)
		publicGroup.GET("/facilities-map", r.facilityHandler.ListForMap)
		publicGroup.GET("/municipalities", r.lookupHandler.ListMunicipalities)
		publicGroup.GET("/facility-types", r.lookupHandler.ListFacilityTypes)
	}

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Admin routes that require authentication
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	{
		adminGroup.GET("/facilities", r.facilityHandler.ListOwned)
		adminGroup.POST("/facilities", r.facilityHandler.Create)
		adminGroup.PUT("/facilities/:id", r.facilityHandler.Update)
		adminGroup.DELETE("/facilities/:id", r.facilityHandler.Delete)
	}

	// Geocoding proxy, open like the public routes
	api.POST("/geocode", r.geocodeHandler.Geocode)
}
