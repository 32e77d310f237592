package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natefinch/lumberjack"

	"eduverse/internal/app"
	"eduverse/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// STEP 1: Route logs to a rotated file and stdout.
	logPath := os.Getenv("EDUVERSE_LOG_FILE")
	if logPath == "" {
		logPath = "logs/eduverse.log"
	}
	log.SetOutput(io.MultiWriter(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}, os.Stdout))

	// STEP 2: Load configuration with precedence (file > env > defaults).
	configPath := os.Getenv("EDUVERSE_CONFIG_FILE")
	cfg := config.LoadConfigWithPrecedence(configPath)

	// STEP 3: Create the application.
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// STEP 4: Signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	// STEP 5: Start and wait for a signal or a startup failure.
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	sig := <-signalCh
	log.Printf("Received signal %v, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return application.Stop(shutdownCtx)
}
