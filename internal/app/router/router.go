package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "swing_backend/internal/feature/analysis/transport/handler"
	authhandler "swing_backend/internal/feature/auth/transport/handler"
	priceshandler "swing_backend/internal/feature/prices/transport/handler"
	"swing_backend/internal/platform/http/handler"
	jwtmw "swing_backend/internal/platform/jwt"
)

func NewRouter(authHandler *authhandler.AuthHandler, prices *priceshandler.PricesHandler,
	analysis *analysishandler.AnalysisHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// 保存済みの日足履歴
		auth.GET("/prices/:ticker", prices.GetPricesHandler)
		// スイング分析の実行と最新結果の参照
		auth.POST("/analyses", analysis.Analyze)
		auth.GET("/analyses/current", analysis.Current)
	}

	return r
}
