package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/api/middleware"
	"github.com/fieldopskit/fieldops-go/internal/api/routes"
	"github.com/fieldopskit/fieldops-go/internal/config"
	"github.com/fieldopskit/fieldops-go/internal/config/db"
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/domain/audit"
	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/fieldopskit/fieldops-go/internal/domain/user"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(
		&user.User{},
		&agent.Agent{},
		&form.Form{},
		&form.FormAttachment{},
		&cyclelog.CycleLog{},
		&cyclelog.RolloverEvent{},
		&submission.Submission{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, db.DB)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
