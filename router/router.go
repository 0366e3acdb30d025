package router

import (
	"time"

	"aifinance/api"
	"aifinance/config"
	_ "aifinance/docs"
	"aifinance/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	v1 := r.Group("/api/v1")
	{
		// 登录（无需认证）
		authHandler := api.NewAuthHandler(cfg)
		v1.POST("/auth/login", authHandler.Login)

		// 业务接口，auth.enabled 时要求 JWT
		authorized := v1.Group("")
		if cfg.Auth.Enabled {
			authorized.Use(middleware.JWTAuth())
		}
		{
			// 账户
			accountHandler := api.NewAccountHandler()
			accounts := authorized.Group("/accounts")
			{
				accounts.POST("", accountHandler.Create)
				accounts.GET("", accountHandler.List)
				accounts.GET("/regular/list", accountHandler.ListRegular)
				accounts.GET("/debts/list", accountHandler.ListDebts)
				accounts.GET("/:id", accountHandler.Get)
				accounts.PATCH("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
				accounts.PATCH("/:id/close-debt", accountHandler.CloseDebt)
				accounts.PATCH("/:id/reopen-debt", accountHandler.ReopenDebt)
			}

			// 类别
			categoryHandler := api.NewCategoryHandler()
			categories := authorized.Group("/categories")
			{
				categories.POST("", categoryHandler.Create)
				categories.GET("", categoryHandler.List)
				categories.GET("/:id", categoryHandler.Get)
				categories.PATCH("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			// 交易
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.GET("/statistics", transactionHandler.Statistics)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// AI记账，限流保护外部服务调用
			aiHandler := api.NewAIHandler()
			ai := authorized.Group("/ai")
			ai.Use(middleware.RateLimit(20, time.Minute))
			{
				ai.POST("/parse", aiHandler.Parse)
			}

			// 报表邮件
			reportHandler := api.NewReportHandler(cfg)
			authorized.POST("/reports/monthly", reportHandler.SendMonthly)

			// 导出
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
