package main

import (
	"fmt"
	"os"
	"time"

	"github.com/uniquest/uniquest-backend/internal/clients/openai"
	rediscache "github.com/uniquest/uniquest-backend/internal/clients/redis"
	"github.com/uniquest/uniquest-backend/internal/clients/vectorindex"
	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/db"
	"github.com/uniquest/uniquest-backend/internal/handlers"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	"github.com/uniquest/uniquest-backend/internal/ml"
	"github.com/uniquest/uniquest-backend/internal/platform/envutil"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/search"
	"github.com/uniquest/uniquest-backend/internal/server"
	"github.com/uniquest/uniquest-backend/internal/services"
	"github.com/uniquest/uniquest-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	modelPath := utils.GetEnv("MODEL_BUNDLE_PATH", "models/grade_model.json", log)
	indexInfoPath := utils.GetEnv("INDEX_INFO_PATH", "models/index_info.json", log)
	weightsPath := envutil.Str("HEURISTIC_WEIGHTS_PATH", "")

	weights, err := heuristics.LoadWeights(weightsPath)
	if err != nil {
		log.Error("Could not load heuristic weights", "path", weightsPath, "error", err)
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	gradeRepo := repos.NewGradeRepo(thePG, log)
	attendanceRepo := repos.NewAttendanceRepo(thePG, log)
	lectureRepo := repos.NewLectureRepo(thePG, log)
	assignmentRepo := repos.NewAssignmentRepo(thePG, log)
	profileRepo := repos.NewLearningProfileRepo(thePG, log)
	examPredictionRepo := repos.NewExamPredictionRepo(thePG, log)
	studyPlanRepo := repos.NewStudyPlanRepo(thePG, log)

	// Model bundle
	modelStore := ml.NewModelStore(log, modelPath)
	if err := modelStore.Load(); err != nil {
		log.Warn("Could not load model bundle", "path", modelPath, "error", err)
	}

	// Optional clients
	embedder, err := openai.NewClient(log)
	if err != nil {
		log.Warn("Embeddings client unavailable; semantic search degraded", "error", err)
		embedder = nil
	}
	var store vectorindex.Store
	if url := envutil.Str("VECTOR_INDEX_URL", ""); url != "" {
		store, err = vectorindex.NewStore(log, vectorindex.Config{
			URL:        url,
			Collection: envutil.Str("VECTOR_INDEX_COLLECTION", "lectures"),
			VectorDim:  envutil.Int("VECTOR_INDEX_DIM", 1536),
		})
		if err != nil {
			log.Warn("Vector index unavailable", "error", err)
		}
	}
	cache, err := rediscache.NewCache(log, time.Duration(envutil.Int("RECOMMENDATION_CACHE_TTL_SECONDS", 300))*time.Second)
	if err != nil {
		log.Warn("Redis cache unavailable; recommendations uncached", "error", err)
		cache = nil
	}
	if cache == nil {
		log.Info("Recommendation caching disabled")
	}

	// Search backends, fixed at startup from the index artifact
	indexInfo := search.LoadIndexInfo(indexInfoPath)
	corpus := services.NewLectureCorpus(thePG, lectureRepo)
	var searchEmbedder search.Embedder
	if embedder != nil {
		searchEmbedder = embedder
	}
	orchestrator := search.NewOrchestrator(log, search.BuildBackends(indexInfo, corpus, searchEmbedder, store)...)

	// Services
	log.Info("Setting up Services from main...")
	predictionService := services.NewPredictionService(thePG, log, enrollmentRepo, gradeRepo, attendanceRepo, modelStore)
	styleService := services.NewLearningStyleService(thePG, log, weights, gradeRepo, attendanceRepo, profileRepo)
	examService := services.NewExamPredictionService(thePG, log, weights, enrollmentRepo, gradeRepo, attendanceRepo, lectureRepo, assignmentRepo, examPredictionRepo)
	planService := services.NewStudyPlanService(thePG, log, weights, styleService, examService, courseRepo, gradeRepo, lectureRepo, enrollmentRepo, studyPlanRepo)
	recommendationService := services.NewRecommendationService(thePG, log, styleService, examService, cache)
	performanceService := services.NewPerformanceService(thePG, log, enrollmentRepo, gradeRepo)
	searchService := services.NewSearchService(log, orchestrator)

	// Handlers
	log.Info("Setting up handlers from main...")
	predictionHandler := handlers.NewPredictionHandler(log, predictionService)
	searchHandler := handlers.NewSearchHandler(log, searchService)
	learningHandler := handlers.NewLearningHandler(log, styleService, examService, planService, recommendationService)
	performanceHandler := handlers.NewPerformanceHandler(log, performanceService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		PredictionHandler:  predictionHandler,
		SearchHandler:      searchHandler,
		LearningHandler:    learningHandler,
		PerformanceHandler: performanceHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
