package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gyansetu.io/backend/internal/api"
	"gyansetu.io/backend/internal/config"
	"gyansetu.io/backend/internal/core"
	"gyansetu.io/backend/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	// LLM providers, tried in order: the RAG service first, then Ollama
	// directly. The chat service falls back to a canned apology when
	// neither can answer.
	ragProvider := core.NewRAGProvider(config.AppConfig.RAGServiceURL)
	ollamaProvider := core.NewOllamaProvider(config.AppConfig.OllamaBaseURL, config.AppConfig.LLMModel)

	// Initialize services
	chatService := core.NewChatService(dbStore, config.AppConfig.LLMModel, ragProvider, ollamaProvider)
	progressService := core.NewProgressService(dbStore)
	documentService := core.NewDocumentService(dbStore, ragProvider)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(dbStore, chatService, progressService, documentService)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: SSE chat streams stay open for as long as the
		// model keeps producing tokens.
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish before forcing the exit.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
