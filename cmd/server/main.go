package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizgen/internal/config"
	"quizgen/internal/correct"
	"quizgen/internal/extract"
	"quizgen/internal/handler"
	"quizgen/internal/ocr"
	"quizgen/internal/port"
	"quizgen/internal/qgen"
	"quizgen/internal/qgen/groq"
	"quizgen/internal/qgen/openai"
	"quizgen/internal/repository/postgres"
	"quizgen/internal/router"
	"quizgen/internal/service"
	s3storage "quizgen/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func registerProviders() {
	qgen.RegisterProvider("groq", func(cfg *config.ProviderConfig) (port.QuestionGenerator, error) {
		return groq.NewGenerator(cfg), nil
	})
	qgen.RegisterProvider("openai", func(cfg *config.ProviderConfig) (port.QuestionGenerator, error) {
		return openai.NewGenerator(cfg), nil
	})
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registerProviders()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	questionRepo := postgres.NewQuestionRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewClient(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the extraction core
	engine := ocr.NewTesseract(cfg.OCR.Language)
	scorer := ocr.NewScorer(cfg.OCR.MinConfidence)
	recognizer := ocr.NewRecognizer(engine, scorer, cfg.OCR.Workers)
	corrector := correct.New()
	extractor := extract.NewAdapter(recognizer, corrector, extract.Config{
		MaxPDFPages:   cfg.Extract.MaxPDFPages,
		MinTextLayer:  cfg.Extract.MinTextLayer,
		MaxConcurrent: cfg.Extract.MaxConcurrent,
		UnitTimeout:   cfg.OCR.UnitTimeout,
	})

	// Initialize question generation, with fallback when a secondary
	// provider is configured
	generator, err := qgen.NewGenerator(&cfg.Generator.Primary)
	if err != nil {
		return fmt.Errorf("failed to initialize question generator: %w", err)
	}
	if secondary := cfg.Generator.SecondaryConfig(); secondary != nil {
		secondaryGen, err := qgen.NewGenerator(secondary)
		if err != nil {
			return fmt.Errorf("failed to initialize secondary generator: %w", err)
		}
		generator = qgen.NewFallbackGenerator(
			[]port.QuestionGenerator{generator, secondaryGen},
			[]string{cfg.Generator.Primary.Provider, secondary.Provider},
		)
	}

	// Initialize services
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	questionSvc := service.NewQuestionService(questionRepo)
	generationSvc := service.NewGenerationService(fileSvc, questionRepo, extractor, generator)

	// Initialize handlers
	fileH := handler.NewFileHandler(fileSvc)
	questionH := handler.NewQuestionHandler(questionSvc)
	generateH := handler.NewGenerateHandler(fileSvc, generationSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, fileH, questionH, generateH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
