package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ffs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	ledger        *logic.LedgerLogic
}

func NewCampaignHandler(campaignLogic *logic.CampaignLogic, ledger *logic.LedgerLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: campaignLogic,
		ledger:        ledger,
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	targetAmount := decimal.Zero
	if req.TargetAmount != "" {
		parsed, err := decimal.NewFromString(req.TargetAmount)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "invalid target amount")
			return
		}
		targetAmount = parsed
	}

	campaign, err := h.campaignLogic.Create(c.Request.Context(), logic.CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		SongUrl:      req.SongUrl,
		ArtistWallet: req.ArtistWallet,
		ArtistName:   req.ArtistName,
		TargetAmount: targetAmount,
	}, req.CreatorAddress)
	if err != nil {
		AppErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "campaign created", campaign)
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", h.campaignLogic.List())
}

// GetCampaign 获取单个活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, ok := h.campaignLogic.Get(c.Param("id"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "campaign not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "", campaign)
}

// UpdateRaisedAmount 更新活动已筹金额
// 未知ID不报错，与存储层语义一致
func (h *CampaignHandler) UpdateRaisedAmount(c *gin.Context) {
	var req UpdateRaisedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.UpdateRaisedAmount(c.Param("id"), req.RaisedAmount); err != nil {
		AppErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "raised amount updated", nil)
}

// GetCampaignContributions 获取活动打赏记录
func (h *CampaignHandler) GetCampaignContributions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	contributions, total := h.ledger.ListByCampaign(c.Param("id"), page, pageSize)

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"contributions": contributions,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.campaignLogic.Get(id); !ok {
		ErrorResponse(c, http.StatusNotFound, "campaign not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "", h.ledger.CampaignStats(id))
}

// GetStats 获取全部活动汇总统计
func (h *CampaignHandler) GetStats(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "", h.campaignLogic.Stats())
}
