// Package router はHTTPルーティングを構成します。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	designhandler "designkit_backend/internal/feature/design/transport/handler"
	historyhandler "designkit_backend/internal/feature/history/transport/handler"
	platformhandler "designkit_backend/internal/platform/http/handler"
	jwtmw "designkit_backend/internal/platform/jwt"
	"designkit_backend/internal/platform/metrics"
)

// maxMultipartMemory はマルチパートフォームをメモリに保持する上限です。
const maxMultipartMemory = 32 << 20

// Handlers はルーターに登録するハンドラー群です。History は nil の場合ルートを登録しません。
type Handlers struct {
	Health   *platformhandler.HealthHandler
	Design   *designhandler.DesignHandler
	Images   *designhandler.ImageHandler
	Sessions *designhandler.SessionHandler
	History  *historyhandler.HistoryHandler
}

// Options はルーター全体の設定です。
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	// Metrics と Gatherer は nil の場合 /metrics と計測ミドルウェアを無効にします。
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter はルーティングを設定したgin.Engineを返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = maxMultipartMemory
	r.Use(corsMiddleware(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.GinMiddleware())
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// 認証必須のルート
	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		// 解析
		design := v1.Group("/design")
		design.POST("/objects", h.Design.RecognizeObjects)
		design.POST("/analysis", h.Design.AnalyzeRoom)
		design.POST("/floorplan", h.Design.GenerateFloorPlan)
		design.POST("/products", h.Design.RecommendProducts)

		// 画像生成
		images := v1.Group("/images")
		images.POST("/generate", h.Images.Generate)
		images.POST("/edit", h.Images.Edit)
		images.POST("/style", h.Images.Style)
		images.POST("/variations", h.Images.Variations)
		images.POST("/composite", h.Images.Composite)
		images.POST("/texture", h.Images.Texture)
		images.POST("/grounded", h.Images.Grounded)
		images.POST("/4k", h.Images.Generate4K)

		// 対話型編集セッション
		sessions := v1.Group("/sessions")
		sessions.POST("", h.Sessions.Create)
		sessions.POST("/:id/edits", h.Sessions.Edit)
		sessions.GET("/:id/history", h.Sessions.History)
		sessions.GET("/:id/turns", h.Sessions.Turns)
		sessions.DELETE("/:id", h.Sessions.Delete)

		if h.History != nil {
			v1.GET("/generations", h.History.List)
		}
	}

	return r
}

// corsMiddleware は許可オリジンに "*" が含まれる場合すべてのオリジンを許可します。
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
