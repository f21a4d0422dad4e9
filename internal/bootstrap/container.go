package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"

	"ai-langcoach-be/internal/config"
	"ai-langcoach-be/internal/controller"
	"ai-langcoach-be/internal/model"
	"ai-langcoach-be/internal/pkg/logger"
	"ai-langcoach-be/internal/pkg/serverutils"
	"ai-langcoach-be/internal/repository/contract"
	firestorerepo "ai-langcoach-be/internal/repository/firestore"
	"ai-langcoach-be/internal/repository/implementation"
	"ai-langcoach-be/internal/repository/memory"
	"ai-langcoach-be/internal/service"
	"ai-langcoach-be/pkg/database"
	"ai-langcoach-be/pkg/openai"

	firebase "firebase.google.com/go/v4"
	"github.com/gofiber/fiber/v2"
	"google.golang.org/api/option"
)

type Container struct {
	SessionController controller.ISessionController
	AuthMiddleware    fiber.Handler
	Logger            logger.ILogger

	closers []func() error
}

// Shutdown releases everything the container owns, in reverse construction
// order.
func (c *Container) Shutdown() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
	_ = c.Logger.Sync()
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	container.Logger = sysLogger

	// Firebase backs both the document store and production token
	// verification; initialized once, only when something needs it.
	var firebaseApp *firebase.App
	newFirebaseApp := func() (*firebase.App, error) {
		if firebaseApp != nil {
			return firebaseApp, nil
		}
		var opts []option.ClientOption
		if _, err := os.Stat(cfg.Storage.FirebaseCredentialsFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(cfg.Storage.FirebaseCredentialsFile))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Storage.FirebaseProjectId}, opts...)
		if err != nil {
			return nil, fmt.Errorf("initialize firebase app: %w", err)
		}
		firebaseApp = app
		return app, nil
	}

	// Storage backend
	var sessionRepo contract.SessionRepository
	switch cfg.Storage.Backend {
	case "postgres":
		gormDB, err := database.NewGormDBFromDSN(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		// A fresh database has no schema yet. AutoMigrate is idempotent,
		// so running it on every boot keeps the backend usable without a
		// separate migration step; cmd/migrate remains for explicit runs.
		if err := gormDB.AutoMigrate(&model.Session{}); err != nil {
			return nil, fmt.Errorf("migrate postgres schema: %w", err)
		}
		sessionRepo = implementation.NewSessionRepository(gormDB)
		log.Println("[INFO] Using Storage Backend: POSTGRES")
	case "memory":
		sessionRepo = memory.NewSessionRepository()
		log.Println("[INFO] Using Storage Backend: MEMORY")
	default:
		app, err := newFirebaseApp()
		if err != nil {
			return nil, err
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize firestore client: %w", err)
		}
		container.closers = append(container.closers, client.Close)
		sessionRepo = firestorerepo.NewSessionRepository(client)
		log.Println("[INFO] Using Storage Backend: FIRESTORE")
	}

	// Identity
	var authMiddleware fiber.Handler
	if cfg.Auth.Provider == "jwt" {
		authMiddleware = serverutils.JwtMiddleware
		log.Println("[INFO] Using Auth Provider: LOCAL JWT")
	} else {
		app, err := newFirebaseApp()
		if err != nil {
			return nil, err
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize firebase auth client: %w", err)
		}
		authMiddleware = serverutils.FirebaseAuthMiddleware(authClient)
		log.Println("[INFO] Using Auth Provider: FIREBASE")
	}
	container.AuthMiddleware = authMiddleware

	// AI provider
	systemPrompt, err := os.ReadFile(cfg.OpenAI.SystemPromptPath)
	if err != nil {
		return nil, fmt.Errorf("read system prompt: %w", err)
	}
	translator := openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.ChatModel,
		cfg.OpenAI.TTSModel,
		cfg.OpenAI.Voice,
		string(systemPrompt),
	)

	sessionService := service.NewSessionService(sessionRepo, cfg.App.SessionRetentionDays, sysLogger)
	container.SessionController = controller.NewSessionController(sessionService, translator)

	return container, nil
}
