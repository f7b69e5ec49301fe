package service

import (
	"Pointly/models"
	"Pointly/types"
)

const timeLayout = "2006-01-02 15:04:05"

const (
	defaultLimit = 20
	maxLimit     = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func toLedgerEntry(l *models.PointsLog) *types.LedgerEntry {
	return &types.LedgerEntry{
		ID:            l.ID,
		UserID:        l.UserID,
		Delta:         l.Delta,
		BalanceBefore: l.BalanceBefore,
		BalanceAfter:  l.BalanceAfter,
		Kind:          l.Kind,
		Remark:        l.Remark,
		TaskID:        l.TaskID,
		CardNo:        l.CardNo,
		CreatedAt:     l.CreatedAt.Format(timeLayout),
	}
}

func toLedgerEntryPage(logs []models.PointsLog, total int64) *types.LedgerEntryPage {
	page := &types.LedgerEntryPage{
		Entries: make([]types.LedgerEntry, 0, len(logs)),
		Total:   total,
	}
	for i := range logs {
		page.Entries = append(page.Entries, *toLedgerEntry(&logs[i]))
	}
	return page
}

func toCard(c *models.ExchangeCard) *types.ExchangeCard {
	card := &types.ExchangeCard{
		ID:        c.ID,
		CardNo:    c.CardNo,
		Name:      c.Name,
		Points:    c.Points,
		Consumed:  c.Consumed,
		Note:      c.Note,
		CreatedAt: c.CreatedAt.Format(timeLayout),
	}
	if c.RedeemedBy != nil {
		card.RedeemedBy = c.RedeemedBy
	}
	if c.RedeemedAt != nil {
		card.RedeemedAt = c.RedeemedAt.Format(timeLayout)
	}
	return card
}

func toTask(t *models.Task) *types.Task {
	task := &types.Task{
		ID:         t.ID,
		UserID:     t.UserID,
		Type:       t.Type,
		Status:     t.Status,
		PointsCost: t.PointsCost,
		Detail:     t.Detail,
		CreatedAt:  t.CreatedAt.Format(timeLayout),
		UpdatedAt:  t.UpdatedAt.Format(timeLayout),
	}
	if len(t.Params) > 0 {
		task.Params = append(task.Params, t.Params...)
	}
	if len(t.Result) > 0 {
		task.Result = append(task.Result, t.Result...)
	}
	return task
}
