package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/cache"
	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/repository"
	"github.com/fadilmartias/resume-matcher/internal/resume"
	"github.com/fadilmartias/resume-matcher/internal/search"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/fadilmartias/resume-matcher/internal/storage"
	"github.com/fadilmartias/resume-matcher/internal/usecase"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	// cloud schemes for STORAGE_URL
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
)

type components struct {
	db    *gorm.DB
	redis *redis.Client

	resumes     *usecase.ResumeUsecase
	matcher     *usecase.MatchUsecase
	indexer     *usecase.IndexUsecase
	assignments *usecase.AssignmentUsecase
}

func (c *components) Close() {
	if c.redis != nil {
		c.redis.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func buildComponents(ctx context.Context, cfg *config.Config, log *zap.Logger) (*components, error) {
	db, err := ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	c := &components{db: db}

	var gemini *service.GeminiService
	if cfg.Gemini.APIKey != "" {
		gemini, err = service.NewGeminiService(ctx, cfg.Gemini, log.Named("gemini"))
		if err != nil {
			c.Close()
			return nil, err
		}
	}

	var completer service.Completer
	if cfg.LLM.Provider == config.ProviderGemini {
		completer = gemini
	} else {
		completer = service.NewChatService(cfg.LLM, log.Named("chat"))
	}

	var embedder service.Embedder
	if gemini != nil {
		embedder = gemini
	}

	var ocr util.PDFReader
	if cfg.OCR.Enabled() {
		ocr = service.NewDocumentIntelligenceService(cfg.OCR, log.Named("ocr"))
	}

	var resumeCache usecase.ResumeCache
	if cfg.Cache.Enabled() {
		c.redis, err = cache.ConnectRedis(ctx, cfg.Cache, 3, log.Named("redis"))
		if err != nil {
			c.Close()
			return nil, err
		}
		resumeCache = cache.NewResumeCache(c.redis, cfg.Cache.TTL)
	}

	signer, err := storage.NewSigner(cfg.Storage.SigningKey, cfg.App.BaseURL, cfg.Storage.LinkTTL)
	if err != nil {
		c.Close()
		return nil, err
	}

	assignmentRepo := repository.NewAssignmentRepository(db)
	chunkRepo := repository.NewJobChunkRepository(db)
	enhancementRepo := repository.NewEnhancementRepository(db)

	var searcher search.Searcher
	var index usecase.IndexWriter
	switch cfg.Search.Backend {
	case config.SearchBackendPGVector:
		searcher = search.NewVectorSearcher(embedder, chunkRepo, assignmentRepo, cfg.Search.Top, log.Named("search"))
	default:
		indexService := service.NewSearchIndexService(cfg.Search, log.Named("search"))
		searcher = indexService
		index = indexService
	}

	c.resumes = usecase.NewResumeUsecase(
		storage.NewBlobStore(cfg.Storage.BaseURL),
		signer,
		util.NewTextExtractor(ocr, log.Named("extract")),
		completer,
		resumeCache,
		enhancementRepo,
		usecase.ResumeOptions{
			ResumeFolder:   cfg.Storage.ResumeFolder,
			EnhancedFolder: cfg.Storage.EnhancedFolder,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
			ParsePolicy:    resume.ParseFallbackPolicy(cfg.LLM.ParsePolicy),
		},
		log.Named("resume"),
	)
	c.matcher = usecase.NewMatchUsecase(c.resumes, completer, searcher,
		match.NewAggregator(match.ParsePolicy(cfg.Search.MalformedHitPolicy)), log.Named("match"))
	c.indexer = usecase.NewIndexUsecase(assignmentRepo, chunkRepo, embedder, index, search.DefaultChunkChars, log.Named("index"))
	c.assignments = usecase.NewAssignmentUsecase(assignmentRepo)

	log.Info("components ready",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("search_backend", cfg.Search.Backend),
		zap.Bool("embeddings", embedder != nil),
		zap.Bool("remote_ocr", ocr != nil),
		zap.Bool("cache", resumeCache != nil),
	)
	return c, nil
}

func ConnectDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return setupDB(db, cfg.App.IsProduction(), migrateSchema)
}

// setupDB sizes the pool and runs migrate. The pool is closed when migrate fails.
func setupDB(db *gorm.DB, production bool, migrate func(*gorm.DB) error) (*gorm.DB, error) {
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !production {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := migrate(db); err != nil {
		pgDB.Close()
		return nil, err
	}
	return db, nil
}

func migrateSchema(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&model.Assignment{}, &model.JobChunk{}, &model.Enhancement{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
