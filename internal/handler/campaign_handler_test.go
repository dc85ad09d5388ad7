package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/blues/ffs/internal/ethereum"
	"github.com/blues/ffs/internal/handler"
	"github.com/blues/ffs/internal/logic"
	"github.com/blues/ffs/internal/router"
	"github.com/blues/ffs/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter, err := store.NewLocalStore(filepath.Join(t.TempDir(), "campaigns.json"))
	require.NoError(t, err)

	campaignLogic, err := logic.NewCampaignLogic(adapter, ethereum.NewMockWriter())
	require.NoError(t, err)
	ledger, err := logic.NewLedgerLogic(adapter)
	require.NoError(t, err)
	tipLogic, err := logic.NewTipLogic(campaignLogic, ledger, ethereum.NewMockWriter(), 4)
	require.NoError(t, err)
	t.Cleanup(tipLogic.Release)
	portfolioLogic := logic.NewPortfolioLogic(ledger)

	return router.Setup(campaignLogic, ledger, tipLogic, portfolioLogic)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validCreateRequest() handler.CreateCampaignRequest {
	return handler.CreateCampaignRequest{
		Title:          "First Single",
		Description:    "Debut track",
		SongUrl:        "https://open.spotify.com/track/xyz",
		ArtistWallet:   "0x1234567890abcdef1234567890abcdef12345678",
		ArtistName:     "DJ Test",
		TargetAmount:   "100",
		CreatorAddress: "0xfedcbafedcbafedcbafedcbafedcbafedcbafedc",
	}
}

func TestCreateAndListCampaigns(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", validCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var created handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Success)

	w = doJSON(t, r, http.MethodGet, "/api/v1/campaigns", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	require.Equal(t, "First Single", listed.Data[0]["title"])
	require.Equal(t, true, listed.Data[0]["isActive"])
}

func TestCreateCampaignRejectsMalformedWallet(t *testing.T) {
	r := newTestRouter(t)

	req := validCreateRequest()
	req.ArtistWallet = "not-an-address"
	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 没有写入
	w = doJSON(t, r, http.MethodGet, "/api/v1/campaigns", nil)
	var listed struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Empty(t, listed.Data)
}

func TestGetCampaignNotFound(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/campaigns/campaign_missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRaisedAmountEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", validCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, "/api/v1/campaigns/"+created.Data.Id+"/raised", handler.UpdateRaisedRequest{RaisedAmount: "35"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/campaigns/"+created.Data.Id, nil)
	var got struct {
		Data struct {
			RaisedAmount string `json:"raisedAmount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "35", got.Data.RaisedAmount)

	// 未知ID不视为错误
	w = doJSON(t, r, http.MethodPut, "/api/v1/campaigns/campaign_missing/raised", handler.UpdateRaisedRequest{RaisedAmount: "99"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitTipValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", validCreateRequest())
	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// 金额非法
	w = doJSON(t, r, http.MethodPost, "/api/v1/tips", handler.SubmitTipRequest{
		CampaignId: created.Data.Id,
		FanAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		Amount:     "0",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 合法提交
	w = doJSON(t, r, http.MethodPost, "/api/v1/tips", handler.SubmitTipRequest{
		CampaignId: created.Data.Id,
		FanAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		Amount:     "5",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	var submitted struct {
		Data struct {
			Id    string `json:"id"`
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))
	require.NotEmpty(t, submitted.Data.Id)

	// 可轮询尝试状态
	w = doJSON(t, r, http.MethodGet, "/api/v1/tips/"+submitted.Data.Id, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetPortfolioRejectsInvalidAddress(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/portfolio/not-an-address", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
