package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"review-insight/backend/internal/api"
	"review-insight/backend/internal/llm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("determine working directory: %v", err)
	}

	dataDir := filepath.Join(baseDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	llmCfg := llm.Config{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		Model:   os.Getenv("OPENROUTER_MODEL"),
		BaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		Backend: llm.BackendOpenRouter,
	}
	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			llmCfg.Timeout = d
		}
	}

	secondaryCfg := llm.Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		Backend: llm.BackendGemini,
		Timeout: llmCfg.Timeout,
	}

	var allowedOrigins []string
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	cfg := api.Config{
		DBPath:             filepath.Join(dataDir, "review-insight.db"),
		AllowedOrigins:     allowedOrigins,
		LLMConfig:          llmCfg,
		SecondaryLLMConfig: secondaryCfg,
		DisableAI:          strings.EqualFold(strings.TrimSpace(os.Getenv("DISABLE_AI")), "true"),
	}
	if override := strings.TrimSpace(os.Getenv("REVIEW_DB_PATH")); override != "" {
		cfg.DBPath = override
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logrus.Infof("starting review-insight backend on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
