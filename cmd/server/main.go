package main

import (
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"intern-portal/config"
	"intern-portal/db"
	apphttp "intern-portal/http"
	"intern-portal/http/handlers"
	"intern-portal/logger"
	"intern-portal/services"
	"intern-portal/services/kafka"
)

func main() {
	// Determine project root by searching upward for go.mod
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("Error getting current working directory:", err)
	}

	absProjectRoot := findProjectRoot(cwd)
	if absProjectRoot == "" {
		log.Fatalf("Could not locate project root (go.mod) from %s", cwd)
	}

	if err := os.Chdir(absProjectRoot); err != nil {
		log.Fatal("Error changing to project root:", err)
	}
	logger.Info("Working directory set to project root: %s", absProjectRoot)

	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}
	store := db.NewStore(db.DB)

	// Wire services
	renderer := services.NewPDFRenderer(config.AppConfig.TemplateDir)
	mailer := services.NewQueueMailer()
	interns := services.NewInternService(store, renderer, mailer)
	auth := services.NewAuthService(store)
	dlq := services.NewDLQService(store)

	// Initialize the event layer (non-fatal when brokers are down)
	kafka.RegisterDeadLetterSink(dlq.Park)
	kafka.InitProducer()
	if err := kafka.InitConsumer(); err != nil {
		logger.Warn("Error initializing Kafka consumer: %v", err)
	}
	kafka.RegisterEmailProcessor(services.HandleEmailEvent)
	kafka.StartConsumer()

	// Setup routes
	apphttp.SetupRoutes(apphttp.Handlers{
		Auth:    handlers.NewAuthHandler(auth),
		Interns: handlers.NewInternHandler(interns),
		Links:   handlers.NewLinkHandler(store),
		DLQ:     handlers.NewDLQHandler(dlq),
	})

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	addr := ":" + config.AppConfig.ServerPort
	go func() {
		logger.Info("Server starting on %s", addr)
		log.Fatal(netHttp.ListenAndServe(addr, nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing event layer...")

	if err := kafka.StopConsumer(); err != nil {
		logger.Error("Error stopping Kafka consumer: %v", err)
	}
	if err := kafka.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}
	if err := db.CloseDB(); err != nil {
		logger.Error("Error closing database: %v", err)
	}

	logger.Info("Server shutdown complete")
}

// findProjectRoot walks up from start and returns the first directory containing go.mod
func findProjectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || strings.HasSuffix(dir, ":\\") || parent == "" {
			break
		}
		dir = parent
	}
	return ""
}
