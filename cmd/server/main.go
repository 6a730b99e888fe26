package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"devnotes/internal/config"
	"devnotes/internal/server"
)

const defaultConfigFile = "config.yml"

func main() {
	// .env загружается до чтения конфига, чтобы работали ${VAR:-default}
	config.LoadEnv()

	configFile := os.Getenv("DEVNOTES_CONFIG")
	if configFile == "" {
		configFile = defaultConfigFile
	}

	appConfig, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	srv, err := server.NewServer(appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting DevNotes on %s", srv.HTTPAddr)
	errChan := srv.Start()

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Printf("Server error: %v", err)
		_ = srv.Shutdown()
		os.Exit(1)
	case sig := <-sigChan:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("DevNotes stopped")
}
