package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Pointly/config"
	"Pointly/models"
	"Pointly/pkg/jwt"
	"Pointly/pkg/response"
	"Pointly/service"
	"Pointly/types"

	"github.com/gin-gonic/gin"
)

const testSecret = "handler-test-secret"

// stubCardService 只实现兑换路径，其余接口留空
type stubCardService struct {
	redeemed map[string]bool
}

var _ service.ICardService = (*stubCardService)(nil)

func (s *stubCardService) RedeemCard(ctx context.Context, cardNo string, userID int64) (*types.LedgerEntry, error) {
	if cardNo != "TEST001" {
		return nil, response.NewError(40402, models.ErrCardNotFound.Error())
	}
	if s.redeemed[cardNo] {
		return nil, response.NewError(40901, models.ErrCardAlreadyRedeemed.Error())
	}
	s.redeemed[cardNo] = true
	return &types.LedgerEntry{
		UserID:       userID,
		Delta:        150,
		BalanceAfter: 150,
		Kind:         models.KindCardRedeem,
		Remark:       "兑换卡：150积分卡",
	}, nil
}

func (s *stubCardService) CreateCards(ctx context.Context, req *types.CreateCardsReq) ([]types.ExchangeCard, error) {
	return nil, nil
}

func (s *stubCardService) GetCard(ctx context.Context, cardNo string) (*types.ExchangeCard, error) {
	return nil, response.NewError(40402, models.ErrCardNotFound.Error())
}

func (s *stubCardService) ListCards(ctx context.Context, req *types.ListCardsReq) (*types.CardPage, error) {
	return &types.CardPage{}, nil
}

func newCardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := &config.Config{Jwt: &config.Jwt{Secret: testSecret, ExpiresIn: 3600}}
	h := &Card{
		Config:      conf,
		CardService: &stubCardService{redeemed: make(map[string]bool)},
	}

	r := gin.New()
	h.RegisterRouter(r)
	return r
}

func bearerToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := jwt.GenerateToken([]byte(testSecret), userID, role, "access", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doRedeem(t *testing.T, r *gin.Engine, auth, cardNo string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"card_no": cardNo})
	req := httptest.NewRequest(http.MethodPost, "/v1/cards/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestRedeemRoute(t *testing.T) {
	r := newCardRouter(t)
	auth := bearerToken(t, 7, models.RoleFree)

	w, resp := doRedeem(t, r, auth, "TEST001")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp["code"].(float64) != 200 {
		t.Fatalf("code = %v, want 200: %v", resp["code"], resp)
	}
	data := resp["data"].(map[string]any)
	if data["delta"].(float64) != 150 || data["user_id"].(float64) != 7 {
		t.Errorf("data = %v, want delta 150 for user 7", data)
	}

	// 重复兑换走业务码，HTTP 状态仍是 200
	w, resp = doRedeem(t, r, auth, "TEST001")
	if w.Code != http.StatusOK || resp["code"].(float64) != 40901 {
		t.Errorf("double redeem = %d/%v, want 200/40901", w.Code, resp["code"])
	}
}

func TestRedeemRoute_CardNotFound(t *testing.T) {
	r := newCardRouter(t)
	_, resp := doRedeem(t, r, bearerToken(t, 7, models.RoleFree), "NOSUCH")
	if resp["code"].(float64) != 40402 {
		t.Errorf("code = %v, want 40402", resp["code"])
	}
}

func TestRedeemRoute_Unauthorized(t *testing.T) {
	r := newCardRouter(t)

	w, _ := doRedeem(t, r, "", "TEST001")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	w, _ = doRedeem(t, r, "Bearer not-a-token", "TEST001")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	r := newCardRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/cards", nil)
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleFree))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("free user status = %d, want 403", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/cards", nil)
	req.Header.Set("Authorization", bearerToken(t, 1, models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}
