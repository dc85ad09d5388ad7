package handler

import (
	"net/http"

	"github.com/blues/ffs/internal/logic"
	"github.com/gin-gonic/gin"
)

type TipHandler struct {
	tipLogic *logic.TipLogic
}

func NewTipHandler(tipLogic *logic.TipLogic) *TipHandler {
	return &TipHandler{tipLogic: tipLogic}
}

// SubmitTip 提交打赏
// 校验失败返回400，响应里带处于idle状态的尝试；
// 校验通过返回202，客户端轮询尝试状态
func (h *TipHandler) SubmitTip(c *gin.Context) {
	var req SubmitTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	attempt, err := h.tipLogic.Submit(c.Request.Context(), req.CampaignId, req.FanAddress, req.Amount, req.Message)
	if err != nil {
		status := http.StatusBadRequest
		c.JSON(status, Response{
			Success: false,
			Message: err.Error(),
			Data:    attempt,
		})
		return
	}

	SuccessResponse(c, http.StatusAccepted, "tip submitted", attempt)
}

// GetTip 查询打赏尝试状态
func (h *TipHandler) GetTip(c *gin.Context) {
	attempt := h.tipLogic.Attempt(c.Param("id"))
	if attempt == nil {
		ErrorResponse(c, http.StatusNotFound, "tip attempt not found")
		return
	}
	SuccessResponse(c, http.StatusOK, "", attempt)
}

// ResetTip error状态的尝试重置回idle
func (h *TipHandler) ResetTip(c *gin.Context) {
	if !h.tipLogic.Reset(c.Param("id")) {
		ErrorResponse(c, http.StatusConflict, "attempt not found or not in error state")
		return
	}
	SuccessResponse(c, http.StatusOK, "attempt reset", nil)
}
