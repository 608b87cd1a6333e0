package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"quote-simulator/internal/api/handlers"
	"quote-simulator/internal/api/middleware"
	"quote-simulator/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("SIMULATOR_DB")
	if dbPath == "" {
		dbPath = filepath.Join("data", "simulators.db")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open simulator store at %s: %v", dbPath, err)
	}
	defer st.Close()
	log.Printf("Simulator store: %s", dbPath)

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	simulateHandler := handlers.NewSimulateHandler()
	simulatorHandler := handlers.NewSimulatorHandler(st)
	presetHandler := handlers.NewPresetHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/export", simulateHandler.RunExport)

		api.GET("/presets", presetHandler.ListPresets)
		api.GET("/presets/:id", presetHandler.GetPreset)

		api.GET("/simulators", simulatorHandler.ListSimulators)
		api.POST("/simulators", simulatorHandler.CreateSimulator)
		api.POST("/simulators/validate", simulateHandler.Validate)
		api.GET("/simulators/:id", simulatorHandler.GetSimulator)
		api.PUT("/simulators/:id", simulatorHandler.UpdateSimulator)
		api.DELETE("/simulators/:id", simulatorHandler.DeleteSimulator)
		api.GET("/simulators/:id/export", simulatorHandler.ExportSimulator)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// The authoring UI runs on its own dev server; allow it through.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
