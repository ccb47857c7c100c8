package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/yourusername/instagram-ai-bot/config"
	"github.com/yourusername/instagram-ai-bot/internal/delivery/dashboard"
	"github.com/yourusername/instagram-ai-bot/internal/delivery/instagram"
	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
	"github.com/yourusername/instagram-ai-bot/internal/infrastructure/browser"
	"github.com/yourusername/instagram-ai-bot/internal/infrastructure/gemini"
	"github.com/yourusername/instagram-ai-bot/internal/infrastructure/parser"
	"github.com/yourusername/instagram-ai-bot/internal/infrastructure/storage"
	"github.com/yourusername/instagram-ai-bot/internal/usecase"
	"github.com/yourusername/instagram-ai-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	logger.Init()
	logger.InfoLogger.Println("starting up...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Catalog: unreadable export is fatal, there is nothing to match against.
	products, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	slugs, err := parser.LoadSlugs(cfg.SlugsPath)
	if err != nil {
		log.Fatalf("failed to load slugs: %v", err)
	}
	productRepo := storage.NewMemoryProductRepository(cfg.ShopHomeURL)
	if err := productRepo.LoadCatalog(context.Background(), products, slugs); err != nil {
		log.Fatalf("failed to index catalog: %v", err)
	}
	logger.InfoLogger.Printf("catalog ready: %d products, %d slugs", len(products), len(slugs))

	contextRepo, err := newContextRepository(cfg)
	if err != nil {
		log.Fatalf("failed to open context store: %v", err)
	}

	aiRepo, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("failed to create Gemini client: %v", err)
	}
	logger.InfoLogger.Printf("Gemini client ready (%s)", constants.GeminiModelName)

	session, err := browser.NewSession(browser.Options{
		SessionID: cfg.SessionID,
		Headless:  cfg.Headless,
	})
	if err != nil {
		log.Fatalf("failed to start browser session: %v", err)
	}
	defer session.Close()
	logger.InfoLogger.Println("browser session ready")

	replyUseCase := usecase.NewReplyUseCase(aiRepo, productRepo)
	statusUseCase := usecase.NewStatusUseCase()

	extractor := instagram.NewExtractor(cfg.BotUsername, instagram.DefaultSelectors())
	syncer := instagram.NewSyncer(session, extractor, instagram.DefaultSettlePolicy())
	responder := instagram.NewResponder(session, replyUseCase)
	bot := instagram.NewBot(syncer, responder, contextRepo, statusUseCase, cfg.SyncInterval)

	logHub := dashboard.NewLogHub(constants.LogRingCapacity)
	logger.AttachSink(logHub)
	server := dashboard.NewServer(contextRepo, replyUseCase, statusUseCase, logHub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.ListenAndServe(ctx, cfg.DashboardAddr); err != nil {
			logger.ErrorLogger.Printf("dashboard server: %v", err)
		}
	}()
	logger.InfoLogger.Printf("dashboard listening on %s", cfg.DashboardAddr)

	go bot.Start(ctx)
	logger.InfoLogger.Printf("bot running, sync every %s. Ctrl+C to stop.", cfg.SyncInterval)

	<-sigChan
	logger.InfoLogger.Println("shutdown signal received...")
	cancel()
	logger.InfoLogger.Println("bot stopped.")
}

// loadCatalog picks the loader from the export's extension; the shop panel
// produces both CSV and xlsx.
func loadCatalog(path string) ([]entity.Product, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return parser.LoadCatalogXLSX(path)
	}
	return parser.LoadCatalog(path)
}

func newContextRepository(cfg *config.Config) (repository.ContextRepository, error) {
	if cfg.DatabaseURL != "" {
		logger.InfoLogger.Println("context store: postgres")
		return storage.NewPostgresContextRepository(cfg.DatabaseURL)
	}
	logger.InfoLogger.Printf("context store: %s", cfg.ContextStorePath)
	return storage.NewFileContextRepository(cfg.ContextStorePath), nil
}

func initDefaultTimezone() {
	const tzName = "Asia/Tehran"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, int(3.5*60*60))
}
