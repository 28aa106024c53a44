package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"swing_backend/internal/app/di"
	"swing_backend/internal/app/router"
	analysishandler "swing_backend/internal/feature/analysis/transport/handler"
	analysisusecase "swing_backend/internal/feature/analysis/usecase"
	authadapters "swing_backend/internal/feature/auth/adapters"
	authhandler "swing_backend/internal/feature/auth/transport/handler"
	authusecase "swing_backend/internal/feature/auth/usecase"
	pricesadapters "swing_backend/internal/feature/prices/adapters"
	priceshandler "swing_backend/internal/feature/prices/transport/handler"
	pricesusecase "swing_backend/internal/feature/prices/usecase"
	infradb "swing_backend/internal/platform/db"
	jwtmw "swing_backend/internal/platform/jwt"
	infraredis "swing_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	priceRepo := pricesadapters.NewPriceRepository(db)
	// 外部APIはRedisキャッシュでラップ
	market := di.NewCachedMarket(rdb)

	// スイング原因調査クライアント（Gemini）
	researcher, err := di.NewResearcher(ctx)
	if err != nil {
		log.Fatal("failed to initialize researcher:", err)
	}

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	historyUC := pricesusecase.NewHistoryUsecase(market)
	pricesUC := pricesusecase.NewPricesUsecase(priceRepo)

	store := analysisusecase.NewResultStore()
	orchestrator := analysisusecase.NewEnrichmentOrchestrator(researcher, store, analysisusecase.DefaultEnrichmentCap)
	analysisUC := analysisusecase.NewAnalysisUsecase(historyUC, store, orchestrator)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	pricesH := priceshandler.NewPricesHandler(pricesUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)

	// ルータ生成
	router := router.NewRouter(authH, pricesH, analysisH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
