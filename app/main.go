package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newsclip/newsclip/app/api"
	"github.com/newsclip/newsclip/app/cfg"
	"github.com/newsclip/newsclip/app/config"
	"github.com/newsclip/newsclip/app/crawler"
	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/deliver"
	"github.com/newsclip/newsclip/app/report"
	"github.com/newsclip/newsclip/app/sources"
	"github.com/newsclip/newsclip/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Newsclip server", "version", appConfig.Version)

	db, err := database.NewConnection(
		appConfig.DBHost, appConfig.DBPort, appConfig.DBUser,
		appConfig.DBPassword, appConfig.DBName)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()
	slog.Info("Connected to database")

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	slog.Info("Migrations applied", "version", version, "dirty", dirty)

	seedLoader := config.NewLoader(appConfig.KeywordsDir)
	seeds, err := seedLoader.LoadAll()
	if err != nil {
		log.Fatal("Failed to load keyword seeds: ", err)
	}
	slog.Info("Keyword seeds loaded", "dir", appConfig.KeywordsDir, "count", len(seeds))

	keywordRepo := database.NewKeywordRepository(db)
	articleRepo := database.NewArticleRepository(db)

	httpClient := &http.Client{Timeout: time.Duration(appConfig.SourceTimeout) * time.Second}

	newsCrawler := crawler.New(crawler.Deps{
		Keywords: keywordRepo,
		Articles: articleRepo,
		Sources: []sources.Source{
			sources.NewNaverClient(httpClient),
			sources.NewGoogleNewsClient(httpClient),
		},
		Threshold: appConfig.DedupeThreshold,
	})

	builder := report.NewBuilder(articleRepo)
	runner := deliver.NewRunner(
		deliver.NewEmailDispatcher(http.DefaultClient),
		deliver.NewLarkDispatcher(http.DefaultClient),
	)

	slog.Info("Starting background scheduler", "workers", appConfig.WorkerCount)
	scheduler := tasks.NewScheduler(newsCrawler, builder, runner, keywordRepo, seeds)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(keywordRepo, articleRepo, newsCrawler, builder, runner)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Newsclip server started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
