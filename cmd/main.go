package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"backstage-brain-backend/internal/api"
	"backstage-brain-backend/internal/api/routes"
	v1 "backstage-brain-backend/internal/api/routes/v1"
	"backstage-brain-backend/internal/auth"
	"backstage-brain-backend/internal/chat"
	"backstage-brain-backend/internal/config"
	"backstage-brain-backend/internal/corpus"
	"backstage-brain-backend/internal/llm"
	"backstage-brain-backend/internal/ratelimit"
	"backstage-brain-backend/internal/repo"
	"backstage-brain-backend/internal/storage"
	"backstage-brain-backend/internal/timeline"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	ctx := context.Background()

	// Connect to database
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.CloseDB(db)

	// Run migrations
	if err := config.MigrateAllModels(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if err := config.SeedCategories(db); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}

	tokens, err := auth.NewTokenManagerFromEnv()
	if err != nil {
		log.Fatal("Failed to configure tokens:", err)
	}

	store, err := storage.NewFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to init object storage:", err)
	}

	model, err := llm.NewClientFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to init model client:", err)
	}

	users := repo.NewUserRepository(db)
	events := repo.NewEventRepository(db)
	files := repo.NewFileRepository(db)
	chats := repo.NewChatRepository(db)
	timelines := repo.NewTimelineRepository(db)
	categories := repo.NewCategoryRepository(db)

	loader := corpus.NewLoader(files, store)

	deps := &v1.Deps{
		Users:      users,
		Events:     events,
		Files:      files,
		Chats:      chats,
		Timelines:  timelines,
		Categories: categories,
		Tokens:     tokens,
		Store:      store,
		Chat:       chat.NewEngine(loader, chats, model),
		Timeline:   timeline.NewEngine(loader, timelines, files, model),
		Limiter:    limiterFromEnv(),
	}

	// Create and configure Fiber app
	app := api.NewServer()

	// Register routes
	routes.Register(app, deps)

	// Start server
	if err := api.StartServer(app); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// limiterFromEnv builds the chat rate limiter when REDIS_ADDR is set;
// otherwise chat runs unthrottled.
func limiterFromEnv() *ratelimit.FixedWindowLimiter {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Warning: REDIS_ADDR not set, chat rate limiting disabled")
		return nil
	}

	limit := 20
	if raw := os.Getenv("CHAT_RATE_LIMIT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Fatalf("Invalid CHAT_RATE_LIMIT %q", raw)
		}
		limit = parsed
	}

	limiter, err := ratelimit.NewRedisFixedWindowLimiter(addr, os.Getenv("REDIS_PASSWORD"), "backstage:chat", limit, time.Minute)
	if err != nil {
		log.Fatal("Failed to init rate limiter:", err)
	}
	return limiter
}
