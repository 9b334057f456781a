package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/config"
	httptransport "github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/http"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/logging"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence/sqlite"
)

func main() {
	// Optional .env for local development. A missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuração inválida:", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	aulaRepo := sqlite.NewAulaRepository(pool)
	turmaRepo := sqlite.NewTurmaRepository(pool)
	ucRepo := sqlite.NewUcRepository(pool)
	feriadoRepo := sqlite.NewFeriadoRepository(pool)

	feriadoService := application.NewFeriadoService(feriadoRepo, cfg.FeriadosAnos, idGenerator, now, logger)
	aulaService := application.NewAulaService(aulaRepo, turmaRepo, ucRepo, feriadoService, idGenerator, now, logger)
	turmaService := application.NewTurmaService(turmaRepo, logger)
	ucService := application.NewUcService(ucRepo, aulaRepo, idGenerator, now, logger)
	cronogramaService := application.NewCronogramaService(aulaRepo, turmaService, feriadoService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Aulas:       httptransport.NewAulaHandler(aulaService, logger),
		Turmas:      httptransport.NewTurmaHandler(turmaService, logger),
		Ucs:         httptransport.NewUcHandler(ucService, logger),
		Feriados:    httptransport.NewFeriadoHandler(feriadoService, logger),
		Cronogramas: httptransport.NewCronogramaHandler(cronogramaService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("cronograma API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
