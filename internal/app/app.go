package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"uf-ai/backend/internal/api"
	"uf-ai/backend/internal/catalog"
	"uf-ai/backend/internal/config"
	"uf-ai/backend/internal/database"
	"uf-ai/backend/internal/events"
	"uf-ai/backend/internal/llm"
	"uf-ai/backend/internal/profile"
	"uf-ai/backend/internal/repository"
	"uf-ai/backend/internal/service"
)

const (
	ollamaModelID      = "meta-llama-3"
	ollamaPingAttempts = 5
	ollamaPingInterval = 3 * time.Second
	shutdownTimeout    = 15 * time.Second
)

// App holds the wired application and the resources it must release.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Redis  *redis.Client
	Chat   *service.ChatService
	Models *service.ModelService
	Server *http.Server
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "store", cfg.StoreDriver)
		serverErr <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp builds every component from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	repo, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	providers, assistant, err := buildProviders(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	broker := events.NewBroker()
	app.Chat = service.NewChatService(repo, providers, assistant, profile.NewService(), broker, service.Options{
		FreeMessageLimit:      cfg.FreeMessageLimit,
		BackgroundTaskTimeout: cfg.BackgroundTaskTimeout,
		ImageContextTurns:     cfg.ImageContextTurns,
		TitleMaxRunes:         cfg.TitleMaxRunes,
	})
	app.Models = service.NewModelService(providers)

	chatHandler := api.NewChatHandler(app.Chat, broker)
	modelHandler := api.NewModelHandler(app.Models)
	router := api.NewRouter(chatHandler, modelHandler, cfg.StaticDir)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

// Close waits for background enrichment and then closes the store.
func (a *App) Close() error {
	if a.Chat != nil {
		a.Chat.Wait()
	}
	var result *multierror.Error
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close database: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close redis: %w", err))
		}
	}
	return result.ErrorOrNil()
}

func (a *App) openStore(ctx context.Context) (repository.Repository, error) {
	switch a.Config.StoreDriver {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: a.Config.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.Config.RedisAddr, err)
		}
		a.Redis = rdb
		slog.Info("Successfully connected to Redis.")
		return repository.NewRedisRepository(rdb), nil
	case config.StoreMemory:
		slog.Warn("Using the in-memory store. Data is lost on restart.")
		return repository.NewMemoryRepository(), nil
	default:
		db, err := database.InitDB(a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Successfully connected to SQLite database.")
		return repository.NewSQLiteRepository(db), nil
	}
}

// buildProviders binds catalog models to live backends. Anything left unbound
// is answered by the simulated provider.
func buildProviders(ctx context.Context, cfg *config.Config) (*llm.Registry, llm.Assistant, error) {
	// The simulated provider answers any request, attachments included.
	providers := llm.NewRegistry(llm.Capability{
		Kind:           llm.KindSimulated,
		Responder:      llm.NewSimulatedProvider(cfg.SimulatedWordDelay),
		SupportsImages: true,
	})

	var (
		assistant llm.Assistant
		completer llm.Completer
	)

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, llm.GeminiModels{
			Research: cfg.ResearchModel,
			Image:    cfg.ImageModel,
			Support:  cfg.SupportModel,
		})
		if err != nil {
			return nil, nil, err
		}
		providers.Register(catalog.DefaultModelID, llm.Capability{
			Kind:           llm.KindGemini,
			Responder:      gemini,
			SupportsImages: true,
			SupportsSearch: true,
		})
		assistant = gemini
		slog.Info("Gemini provider enabled", "model", catalog.DefaultModelID)
	} else {
		slog.Warn("GEMINI_API_KEY is not set. Every model answers with simulated responses.")
	}

	if cfg.OllamaURL != "" {
		ollama := llm.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel)
		if err := waitForOllama(ctx, ollama, ollamaPingAttempts, ollamaPingInterval); err != nil {
			slog.Warn("Ollama is not reachable, serving its model with simulated responses.", "url", cfg.OllamaURL, "error", err)
		} else {
			providers.Register(ollamaModelID, llm.Capability{
				Kind:           llm.KindOllama,
				Responder:      ollama,
				SupportsImages: true,
			})
			completer = ollama
		}
	}

	if assistant == nil {
		assistant = llm.NewLocalAssistant(completer, cfg.TitleMaxRunes)
	}
	return providers, assistant, nil
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func waitForOllama(ctx context.Context, ollama *llm.OllamaProvider, attempts int, interval time.Duration) error {
	slog.Info("Waiting for Ollama to be ready...")
	var err error
	for i := 0; i < attempts; i++ {
		if err = ollama.Ping(ctx); err == nil {
			slog.Info("Ollama is ready.")
			return nil
		}
		slog.Debug("Ollama not ready yet", "attempt", i+1, "error", err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return err
}
