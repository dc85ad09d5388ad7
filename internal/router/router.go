package router

import (
	"github.com/blues/ffs/internal/handler"
	"github.com/blues/ffs/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(campaignLogic *logic.CampaignLogic, ledger *logic.LedgerLogic, tipLogic *logic.TipLogic, portfolioLogic *logic.PortfolioLogic) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fan-funding-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(campaignLogic, ledger)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/stats", campaignHandler.GetStats)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PUT("/:id/raised", campaignHandler.UpdateRaisedAmount)
			campaigns.GET("/:id/contributions", campaignHandler.GetCampaignContributions)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
		}

		// 打赏相关路由
		tipHandler := handler.NewTipHandler(tipLogic)
		tips := v1.Group("/tips")
		{
			tips.POST("", tipHandler.SubmitTip)
			tips.GET("/:id", tipHandler.GetTip)
			tips.POST("/:id/reset", tipHandler.ResetTip)
		}

		// 粉丝组合相关路由
		portfolioHandler := handler.NewPortfolioHandler(portfolioLogic)
		v1.GET("/portfolio/:address", portfolioHandler.GetPortfolio)
		v1.GET("/perk-tiers", portfolioHandler.GetPerkTiers)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
