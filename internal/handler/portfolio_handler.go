package handler

import (
	"net/http"

	"github.com/blues/ffs/internal/logic"
	"github.com/blues/ffs/internal/utils"
	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioLogic *logic.PortfolioLogic
}

func NewPortfolioHandler(portfolioLogic *logic.PortfolioLogic) *PortfolioHandler {
	return &PortfolioHandler{portfolioLogic: portfolioLogic}
}

// GetPortfolio 获取粉丝组合（总额、权益等级、打赏记录）
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	address := c.Param("address")
	if !utils.IsValidAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "invalid wallet address")
		return
	}
	SuccessResponse(c, http.StatusOK, "", h.portfolioLogic.Portfolio(address))
}

// GetPerkTiers 获取权益等级阶梯
func (h *PortfolioHandler) GetPerkTiers(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", logic.DefaultPerkTiers)
}
