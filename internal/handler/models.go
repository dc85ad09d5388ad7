package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	SongUrl        string `json:"songUrl" binding:"required"`
	ArtistWallet   string `json:"artistWallet" binding:"required"`
	ArtistName     string `json:"artistName" binding:"required"`
	TargetAmount   string `json:"targetAmount"`
	CreatorAddress string `json:"creatorAddress" binding:"required"`
}

// UpdateRaisedRequest 更新已筹金额请求
type UpdateRaisedRequest struct {
	RaisedAmount string `json:"raisedAmount" binding:"required"`
}

// SubmitTipRequest 提交打赏请求
type SubmitTipRequest struct {
	CampaignId string `json:"campaignId" binding:"required"`
	FanAddress string `json:"fanAddress" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Message    string `json:"message"`
}
