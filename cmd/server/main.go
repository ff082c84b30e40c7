package main

import (
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/config"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/handler"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/middleware"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/router"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/service"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/youtube"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "growthpilot")
	handler.InitMetrics()

	cache := service.NewCacheService(cfg.RedisURL, cfg.ReportCacheTTL)
	defer cache.Close()
	cache.InstrumentWith(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)

	yt := youtube.NewClient(youtube.WithBaseURL(cfg.YouTubeBaseURL))

	analyzeSvc := service.NewAnalyzeService(
		service.NewResolverService(service.NewCachedDirectory(yt, cache)),
		service.NewFeedService(yt, cfg.MaxUploads),
		service.NewCadenceService(),
		service.NewKeywordService(cfg.KeywordMinLength, cfg.KeywordTopN),
		service.NewInsightService(),
		cache,
		cfg.FetchTimeout,
	)

	app := fiber.New(fiber.Config{
		AppName:      "GrowthPilot API",
		ServerHeader: "GrowthPilot",
	})

	h := &router.Handlers{
		Analyze: handler.NewAnalyzeHandler(analyzeSvc),
		Health:  handler.NewHealthHandler(cache.Client(), cfg.YouTubeBaseURL),
		Stats:   handler.NewStatsHandler(analyzeSvc),
	}
	router.Setup(app, h, cfg.CORSOrigins, cfg.RateLimitPerMinute)

	log.Printf("GrowthPilot backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
