package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"Pointly/dao"
	"Pointly/models"
	"Pointly/pkg/response"

	"gorm.io/datatypes"
)

// fakeLedger 内存版流水存储，余额计算走 models.UserPoint.Apply，
// 和线上实现共用同一套不变式
type fakeLedger struct {
	mu       sync.Mutex
	accounts map[int64]*models.UserPoint
	logs     []models.PointsLog
	nextID   int64

	lastFilter dao.EntryFilter
	failWith   error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{accounts: make(map[int64]*models.UserPoint)}
}

func (f *fakeLedger) addAccount(userID, balance, redeemed, used int64) {
	f.accounts[userID] = &models.UserPoint{
		UserID:        userID,
		Balance:       balance,
		TotalRedeemed: redeemed,
		TotalUsed:     used,
	}
}

func (f *fakeLedger) Append(ctx context.Context, p dao.AppendParams) (*models.PointsLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	acc, ok := f.accounts[p.UserID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	entry, err := acc.Apply(p.Delta, p.Kind)
	if err != nil {
		return nil, err
	}
	f.nextID++
	entry.ID = f.nextID
	entry.Remark = p.Remark
	entry.TaskID = p.TaskID
	entry.CardNo = p.CardNo
	entry.CreatedAt = time.Now()
	f.logs = append(f.logs, *entry)
	return entry, nil
}

func (f *fakeLedger) GetAccount(ctx context.Context, userID int64) (*models.UserPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	acc, ok := f.accounts[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeLedger) ListEntries(ctx context.Context, filter dao.EntryFilter) ([]models.PointsLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, 0, f.failWith
	}
	f.lastFilter = filter

	var matched []models.PointsLog
	for _, l := range f.logs {
		if filter.UserID > 0 && l.UserID != filter.UserID {
			continue
		}
		if filter.Kind != "" && l.Kind != filter.Kind {
			continue
		}
		if filter.DeltaSign > 0 && l.Delta <= 0 {
			continue
		}
		if filter.DeltaSign < 0 && l.Delta >= 0 {
			continue
		}
		matched = append(matched, l)
	}

	asc := filter.SortOrder == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakeLedger) AggregateStats(ctx context.Context) (*dao.AggregateStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	stats := &dao.AggregateStats{}
	for _, acc := range f.accounts {
		stats.TotalUsers++
		stats.TotalRedeemed += acc.TotalRedeemed
		stats.TotalUsed += acc.TotalUsed
		if acc.TotalUsed > 0 {
			stats.ActiveUsers++
		}
	}
	return stats, nil
}

func (f *fakeLedger) TopConsumers(ctx context.Context, limit int) ([]dao.ConsumerRank, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	used := make(map[int64]int64)
	last := make(map[int64]time.Time)
	for _, l := range f.logs {
		if l.Delta >= 0 {
			continue
		}
		used[l.UserID] += -l.Delta
		if l.CreatedAt.After(last[l.UserID]) {
			last[l.UserID] = l.CreatedAt
		}
	}

	ranks := make([]dao.ConsumerRank, 0, len(used))
	for uid, u := range used {
		ranks = append(ranks, dao.ConsumerRank{
			UserID:     uid,
			Used:       u,
			LastUsedAt: last[uid].Format(timeLayout),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Used != ranks[j].Used {
			return ranks[i].Used > ranks[j].Used
		}
		return ranks[i].LastUsedAt > ranks[j].LastUsedAt
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}

// fakeCardStore 内存版兑换卡存储，check-and-mark 靠互斥锁串行化
type fakeCardStore struct {
	mu     sync.Mutex
	cards  map[string]*models.ExchangeCard
	ledger *fakeLedger
}

func newFakeCardStore(ledger *fakeLedger) *fakeCardStore {
	return &fakeCardStore{
		cards:  make(map[string]*models.ExchangeCard),
		ledger: ledger,
	}
}

func (f *fakeCardStore) addCard(cardNo, name string, points int64) {
	f.cards[cardNo] = &models.ExchangeCard{
		ID:     int64(len(f.cards) + 1),
		CardNo: cardNo,
		Name:   name,
		Points: points,
	}
}

func (f *fakeCardStore) Redeem(ctx context.Context, cardNo string, userID int64) (*models.PointsLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	card, ok := f.cards[cardNo]
	if !ok {
		return nil, models.ErrCardNotFound
	}
	if card.Consumed {
		return nil, models.ErrCardAlreadyRedeemed
	}
	if err := card.MarkRedeemed(userID, time.Now()); err != nil {
		return nil, err
	}

	no := card.CardNo
	entry, err := f.ledger.Append(ctx, dao.AppendParams{
		UserID: userID,
		Delta:  card.Points,
		Kind:   models.KindCardRedeem,
		Remark: "兑换卡：" + card.Name,
		CardNo: &no,
	})
	if err != nil {
		// 流水失败整体回滚，卡不能留在已兑换态
		card.Consumed = false
		card.RedeemedBy = nil
		card.RedeemedAt = nil
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrIneligibleUser
		}
		return nil, err
	}
	return entry, nil
}

func (f *fakeCardStore) CreateBatch(ctx context.Context, cards []*models.ExchangeCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cards {
		f.cards[c.CardNo] = c
	}
	return nil
}

func (f *fakeCardStore) FindByNo(ctx context.Context, cardNo string) (*models.ExchangeCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[cardNo]
	if !ok {
		return nil, models.ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}

func (f *fakeCardStore) ListCards(ctx context.Context, filter dao.CardFilter) ([]models.ExchangeCard, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ExchangeCard
	for _, c := range f.cards {
		if filter.Consumed != nil && c.Consumed != *filter.Consumed {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeTaskStore 内存版任务存储
type fakeTaskStore struct {
	mu     sync.Mutex
	tasks  map[int64]*models.Task
	ledger *fakeLedger
	nextID int64
}

func newFakeTaskStore(ledger *fakeLedger) *fakeTaskStore {
	return &fakeTaskStore{
		tasks:  make(map[int64]*models.Task),
		ledger: ledger,
	}
}

func (f *fakeTaskStore) CreateWithCharge(ctx context.Context, task *models.Task) (*models.PointsLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	task.ID = f.nextID
	task.Status = models.TaskPending
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	var entry *models.PointsLog
	if task.PointsCost > 0 {
		e, err := f.ledger.Append(ctx, dao.AppendParams{
			UserID: task.UserID,
			Delta:  -task.PointsCost,
			Kind:   models.KindFeatureUsage,
			Remark: "任务消耗：" + task.Type,
			TaskID: &task.ID,
		})
		if err != nil {
			return nil, err
		}
		entry = e
	}
	cp := *task
	f.tasks[task.ID] = &cp
	return entry, nil
}

func (f *fakeTaskStore) Transition(ctx context.Context, taskID int64, to, detail string, result datatypes.JSON) (*models.Task, *models.PointsLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[taskID]
	if !ok {
		return nil, nil, models.ErrTaskNotFound
	}
	if err := task.TransitionTo(to); err != nil {
		return nil, nil, err
	}
	if detail != "" {
		task.Detail = detail
	}
	if result != nil {
		task.Result = result
	}

	var entry *models.PointsLog
	if task.NeedsRefund() {
		e, err := f.ledger.Append(ctx, dao.AppendParams{
			UserID: task.UserID,
			Delta:  task.PointsCost,
			Kind:   models.KindRefund,
			Remark: "任务退款：" + task.Type,
			TaskID: &task.ID,
		})
		if err != nil {
			return nil, nil, err
		}
		entry = e
		task.Refunded = true
	}
	task.UpdatedAt = time.Now()
	cp := *task
	return &cp, entry, nil
}

func (f *fakeTaskStore) FindUserTask(ctx context.Context, taskID, userID int64) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, models.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (f *fakeTaskStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Task, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

// bizCode 提取业务错误码
func bizCode(t *testing.T, err error) int {
	t.Helper()
	var be *response.BizError
	if !errors.As(err, &be) {
		t.Fatalf("expected BizError, got %v", err)
	}
	return be.Code
}
