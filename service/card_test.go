package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"Pointly/models"
	"Pointly/pkg/cardno"
	"Pointly/pkg/response"
	"Pointly/types"
)

func testCardGen(t *testing.T) *cardno.Generator {
	t.Helper()
	g, err := cardno.New("PL", "test-salt")
	if err != nil {
		t.Fatalf("cardno.New: %v", err)
	}
	return g
}

func TestRedeemCard(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 0, 0, 0)
	cards := newFakeCardStore(ledger)
	cards.addCard("TEST001", "150积分卡", 150)

	svc := &CardService{Cards: cards}

	entry, err := svc.RedeemCard(context.Background(), "TEST001", 1)
	if err != nil {
		t.Fatalf("RedeemCard: %v", err)
	}
	if entry.Delta != 150 || entry.BalanceBefore != 0 || entry.BalanceAfter != 150 {
		t.Errorf("entry = %+v, want delta 150 balance 0->150", entry)
	}
	if entry.Kind != models.KindCardRedeem {
		t.Errorf("kind = %q, want %q", entry.Kind, models.KindCardRedeem)
	}
	if entry.Remark != "兑换卡：150积分卡" {
		t.Errorf("remark = %q", entry.Remark)
	}
	if entry.CardNo == nil || *entry.CardNo != "TEST001" {
		t.Errorf("card_no = %v, want TEST001", entry.CardNo)
	}

	account, err := ledger.GetAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if account.Balance != 150 || account.TotalRedeemed != 150 {
		t.Errorf("account = %+v, want balance 150 redeemed 150", account)
	}

	// 同一张卡再兑一次必须失败，余额不动
	if _, err := svc.RedeemCard(context.Background(), "TEST001", 1); bizCode(t, err) != 40901 {
		t.Errorf("second redeem code = %d, want 40901", bizCode(t, err))
	}
	account, _ = ledger.GetAccount(context.Background(), 1)
	if account.Balance != 150 {
		t.Errorf("balance after double redeem = %d, want 150", account.Balance)
	}
}

func TestRedeemCard_NormalizesCardNo(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 0, 0, 0)
	cards := newFakeCardStore(ledger)
	cards.addCard("PL-ABCD", "卡", 10)

	svc := &CardService{Cards: cards}
	if _, err := svc.RedeemCard(context.Background(), "  pl-abcd ", 1); err != nil {
		t.Fatalf("RedeemCard with lowercase card no: %v", err)
	}
}

func TestRedeemCard_Errors(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 0, 0, 0)
	cards := newFakeCardStore(ledger)
	cards.addCard("GONE001", "卡", 10)

	svc := &CardService{Cards: cards}
	ctx := context.Background()

	if _, err := svc.RedeemCard(ctx, "NOSUCH", 1); bizCode(t, err) != 40402 {
		t.Errorf("unknown card code = %d, want 40402", bizCode(t, err))
	}
	// 用户不存在按兑换资格不符处理
	if _, err := svc.RedeemCard(ctx, "GONE001", 999); bizCode(t, err) != 40301 {
		t.Errorf("unknown user code = %d, want 40301", bizCode(t, err))
	}
	// 上一步失败后卡必须还能兑换
	if _, err := svc.RedeemCard(ctx, "GONE001", 1); err != nil {
		t.Errorf("card should stay redeemable after failed attempt: %v", err)
	}
	if _, err := svc.RedeemCard(ctx, "", 1); bizCode(t, err) != 40001 {
		t.Errorf("empty card no code = %d, want 40001", bizCode(t, err))
	}
}

// 并发兑同一张卡只允许一个赢家，其余都拿已兑换错误
func TestRedeemCard_Concurrent(t *testing.T) {
	const workers = 16

	ledger := newFakeLedger()
	for i := int64(1); i <= workers; i++ {
		ledger.addAccount(i, 0, 0, 0)
	}
	cards := newFakeCardStore(ledger)
	cards.addCard("RACE001", "抢兑卡", 100)

	svc := &CardService{Cards: cards}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RedeemCard(context.Background(), "RACE001", int64(i+1))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		if bizCode(t, err) != 40901 {
			t.Errorf("loser error code = %d, want 40901", bizCode(t, err))
		}
	}
	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}

	var total int64
	for i := int64(1); i <= workers; i++ {
		acc, _ := ledger.GetAccount(context.Background(), i)
		total += acc.Balance
	}
	if total != 100 {
		t.Errorf("total credited = %d, want 100", total)
	}
}

func TestCreateCards(t *testing.T) {
	ledger := newFakeLedger()
	cards := newFakeCardStore(ledger)
	svc := &CardService{Cards: cards, Gen: testCardGen(t)}

	out, err := svc.CreateCards(context.Background(), &types.CreateCardsReq{
		Name:   "新人礼",
		Points: 50,
		Count:  3,
	})
	if err != nil {
		t.Fatalf("CreateCards: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("created %d cards, want 3", len(out))
	}
	seen := make(map[string]bool)
	for _, c := range out {
		if c.Points != 50 || c.Name != "新人礼" || c.Consumed {
			t.Errorf("card = %+v", c)
		}
		if seen[c.CardNo] {
			t.Errorf("duplicate card no %q", c.CardNo)
		}
		seen[c.CardNo] = true
	}
}

func TestListCards_FilterConsumed(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 0, 0, 0)
	cards := newFakeCardStore(ledger)
	cards.addCard("A001", "卡A", 10)
	cards.addCard("B001", "卡B", 10)

	svc := &CardService{Cards: cards}
	ctx := context.Background()

	if _, err := svc.RedeemCard(ctx, "A001", 1); err != nil {
		t.Fatalf("RedeemCard: %v", err)
	}

	consumed := true
	page, err := svc.ListCards(ctx, &types.ListCardsReq{Consumed: &consumed})
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(page.Cards) != 1 || page.Cards[0].CardNo != "A001" {
		t.Errorf("consumed cards = %+v, want only A001", page.Cards)
	}
	if page.Cards[0].RedeemedBy == nil || *page.Cards[0].RedeemedBy != 1 {
		t.Errorf("redeemed_by = %v, want 1", page.Cards[0].RedeemedBy)
	}
}

func TestRedeemCard_StoreError(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount(1, 0, 0, 0)
	ledger.failWith = models.ErrStoreUnavailable
	cards := newFakeCardStore(ledger)
	cards.addCard("X001", "卡", 10)

	svc := &CardService{Cards: cards}
	_, err := svc.RedeemCard(context.Background(), "X001", 1)
	if bizCode(t, err) != 50301 {
		t.Errorf("code = %d, want 50301", bizCode(t, err))
	}
	var be *response.BizError
	if !errors.As(err, &be) || !be.Retryable() {
		t.Errorf("store error should be retryable")
	}
}
