package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/jobmate/config"
	"github.com/yoockh/jobmate/internal/api/handlers"
	"github.com/yoockh/jobmate/internal/api/middleware"
	"github.com/yoockh/jobmate/internal/api/routes"
	"github.com/yoockh/jobmate/internal/auth"
	"github.com/yoockh/jobmate/internal/cache"
	"github.com/yoockh/jobmate/internal/logger"
	"github.com/yoockh/jobmate/internal/providers/extract"
	"github.com/yoockh/jobmate/internal/providers/jobsource"
	"github.com/yoockh/jobmate/internal/providers/llm"
	"github.com/yoockh/jobmate/internal/providers/messaging"
	"github.com/yoockh/jobmate/internal/providers/stt"
	mongorepo "github.com/yoockh/jobmate/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/storage"
	"github.com/yoockh/jobmate/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init MongoDB
	if err := config.InitMongo(cfg.Mongo.URI); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(cfg.Mongo.Database); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Init PostgreSQL
	if err := config.InitPostgres(cfg.Postgres.URI); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.AutoMigrate(config.PostgresDB); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(cfg.Redis.Addr); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	log.Info("Redis connected")

	p := buildProviders(ctx, cfg, log)
	defer p.close()

	// Repositories
	db := config.PostgresDB
	mdb := config.MongoDatabase(cfg.Mongo.Database)

	profileRepo := pgrepo.NewProfileRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	savedJobRepo := pgrepo.NewSavedJobRepo(db)
	savedCVRepo := pgrepo.NewSavedCVRepo(db)
	generatedRepo := pgrepo.NewGeneratedCVRepo(db)
	coverLetterRepo := pgrepo.NewCoverLetterRepo(db)
	learningRepo := pgrepo.NewLearningRepo(db)
	alertRepo := pgrepo.NewAlertPreferenceRepo(db)
	notificationRepo := pgrepo.NewNotificationRepo(db)
	cvFileRepo := pgrepo.NewCVFileRepo(db)
	ocrRepo := pgrepo.NewOCRResultRepo(db)
	chatRepo := mongorepo.NewChatRepo(mdb)
	interviewRepo := mongorepo.NewInterviewRepo(mdb)

	// Services
	notificationSvc := services.NewNotificationService(notificationRepo, config.RedisClient, log)
	cvSvc := services.NewCVService(p.groq, p.openai, profileRepo, generatedRepo, log)
	coverLetterSvc := services.NewCoverLetterService(p.groq, coverLetterRepo, log)
	assistantSvc := services.NewAssistantService(p.groq, chatRepo, log)
	interviewSvc := services.NewInterviewService(interviewRepo, p.transcriber)
	ingestSvc := services.NewJobIngestionService(p.jobSource, jobRepo, p.embedder, log)
	jobSvc := services.NewJobService(jobRepo, profileRepo)
	searchSvc := services.NewJobSearchService(p.linkedin, cache.NewRedisCache(config.RedisClient),
		time.Duration(cfg.Jobs.SearchCacheMinutes)*time.Minute, log)
	alertSvc := services.NewAlertService(alertRepo, jobRepo, p.sender, notificationSvc, log)
	scanSvc := services.NewScanService(p.extractor, ocrRepo, log)
	profileSvc := services.NewProfileService(profileRepo, p.embedder)
	savedSvc := services.NewSavedService(jobRepo, savedJobRepo, savedCVRepo, generatedRepo)
	learningSvc := services.NewLearningService(learningRepo)
	dashboardSvc := services.NewDashboardService(savedJobRepo, generatedRepo, savedCVRepo, jobRepo, interviewRepo)
	cvFileSvc := services.NewCVFileService(cvFileRepo, p.store)

	// Background workers
	if cfg.Scheduler.Enabled {
		pool := &workers.AlertWorkerPool{
			Redis:      config.RedisClient,
			Alerts:     alertSvc,
			NumWorkers: cfg.Scheduler.AlertWorkers,
			Logger:     log,
		}
		if err := pool.Start(ctx); err != nil {
			log.Fatalf("alert workers init error: %v", err)
		}
		go workers.NewScheduler(cfg, ingestSvc, alertSvc, config.RedisClient, log).Run(ctx)
	}

	// Handlers
	deps := routes.Deps{
		Verifier:      auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience),
		Functions:     handlers.NewFunctionsHandler(cvSvc, coverLetterSvc, assistantSvc, ingestSvc, searchSvc, alertSvc, scanSvc),
		Profile:       handlers.NewProfileHandler(profileSvc),
		Jobs:          handlers.NewJobHandler(jobSvc),
		Saved:         handlers.NewSavedHandler(savedSvc),
		CV:            handlers.NewCVHandler(cvFileSvc),
		CoverLetters:  handlers.NewCoverLetterHandler(coverLetterSvc),
		Learning:      handlers.NewLearningHandler(learningSvc),
		Interview:     handlers.NewInterviewHandler(interviewSvc),
		Chat:          handlers.NewChatHandler(assistantSvc),
		Alerts:        handlers.NewAlertHandler(alertSvc),
		Notifications: handlers.NewNotificationHandler(notificationSvc),
		Dashboard:     handlers.NewDashboardHandler(dashboardSvc),
		WS:            handlers.NewWSHandler(notificationSvc, config.RedisClient, log),
	}

	// Start Gin server
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()
	log.WithField("port", cfg.Server.Port).Info("JobMate API listening")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = config.CloseMongo(shutdownCtx)
	_ = config.RedisClient.Close()
	log.Info("shutdown complete")
}

// providerSet holds the external capabilities. Interface fields stay nil
// when unconfigured so services can report the missing key.
type providerSet struct {
	groq        llm.Provider
	openai      llm.Provider
	embedder    llm.Embedder
	transcriber stt.Provider
	extractor   extract.Extractor
	sender      messaging.Sender
	jobSource   jobsource.Fetcher
	linkedin    jobsource.Searcher
	store       storage.Store

	closers []func() error
}

func (p *providerSet) close() {
	for _, c := range p.closers {
		_ = c()
	}
}

func buildProviders(ctx context.Context, cfg *config.Config, log *logrus.Logger) *providerSet {
	p := &providerSet{}

	var gemini *llm.VertexGemini
	if cfg.Google.ProjectID != "" {
		g, err := llm.NewVertexGemini(ctx, cfg.Google.ProjectID, cfg.Google.Location, cfg.Google.VertexModel, cfg.Google.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("vertex gemini unavailable")
		} else {
			gemini = g
			p.closers = append(p.closers, g.Close)
		}
	}

	switch {
	case cfg.LLM.Provider == "vertex" && gemini != nil:
		p.groq = gemini
	case cfg.LLM.GroqAPIKey != "":
		g, err := llm.NewOpenAICompatible("Groq", cfg.LLM.GroqAPIKey, cfg.LLM.GroqBaseURL, cfg.LLM.GroqModel, "")
		if err != nil {
			log.WithError(err).Warn("groq client unavailable")
		} else {
			p.groq = g
		}
	}

	if cfg.LLM.OpenAIAPIKey != "" {
		o, err := llm.NewOpenAICompatible("OpenAI", cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIModel, cfg.LLM.OpenAIEmbeddingModel)
		if err != nil {
			log.WithError(err).Warn("openai client unavailable")
		} else {
			p.openai = o
			p.embedder = o
		}
	}

	switch cfg.Capabilities.Transcriber {
	case "google":
		g, err := stt.NewGoogleSpeech(ctx, cfg.Google.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("google speech unavailable, using fixed transcription")
		} else {
			p.transcriber = g
			p.closers = append(p.closers, g.Close)
		}
	}

	p.extractor = extract.Fixed{}
	if cfg.Capabilities.DocumentExtractor == "vertex" && gemini != nil {
		p.extractor = extract.NewVertex(gemini)
	}

	p.sender = messaging.NewLogSender(log)
	if cfg.Capabilities.MessageSender == "whatsapp" {
		p.sender = messaging.NewWhatsAppCloud(cfg.Capabilities.WhatsAppToken, cfg.Capabilities.WhatsAppPhoneNumberID)
	}

	if cfg.Jobs.JSearchAPIKey != "" {
		p.jobSource = jobsource.NewJSearch(cfg.Jobs.JSearchAPIKey, "")
	} else {
		p.jobSource = jobsource.NewRemoteOK()
	}

	if li := jobsource.NewLinkedIn(cfg.Jobs.LinkedInClientID, cfg.Jobs.LinkedInClientSecret); li.Configured() {
		p.linkedin = li
	}

	if cfg.Google.Bucket != "" {
		s, err := storage.NewGCSStore(ctx, cfg.Google.Bucket, cfg.Google.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("gcs unavailable, using in-memory store")
		} else {
			p.store = s
			p.closers = append(p.closers, s.Close)
		}
	}
	if p.store == nil {
		p.store = storage.NewMemory()
	}
	return p
}
