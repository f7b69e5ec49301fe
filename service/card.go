package service

import (
	"context"
	"strings"

	"Pointly/dao"
	"Pointly/models"
	"Pointly/pkg/cardno"
	"Pointly/types"
)

// CardStore 兑换卡存储。Redeem 由实现方保证 check-and-mark 的原子性：
// 并发兑换同一张卡只允许一个成功。
type CardStore interface {
	Redeem(ctx context.Context, cardNo string, userID int64) (*models.PointsLog, error)
	CreateBatch(ctx context.Context, cards []*models.ExchangeCard) error
	FindByNo(ctx context.Context, cardNo string) (*models.ExchangeCard, error)
	ListCards(ctx context.Context, f dao.CardFilter) ([]models.ExchangeCard, int64, error)
}

type CardService struct {
	Cards CardStore
	Gen   *cardno.Generator
}

var _ ICardService = (*CardService)(nil)

type ICardService interface {
	RedeemCard(ctx context.Context, cardNo string, userID int64) (*types.LedgerEntry, error)
	CreateCards(ctx context.Context, req *types.CreateCardsReq) ([]types.ExchangeCard, error)
	GetCard(ctx context.Context, cardNo string) (*types.ExchangeCard, error)
	ListCards(ctx context.Context, req *types.ListCardsReq) (*types.CardPage, error)
}

// RedeemCard 兑换一张卡并把面值记入用户账户
func (s *CardService) RedeemCard(ctx context.Context, cardNo string, userID int64) (*types.LedgerEntry, error) {
	cardNo = strings.TrimSpace(strings.ToUpper(cardNo))
	if cardNo == "" || userID <= 0 {
		return nil, asBizError(models.ErrInvalidArgument)
	}

	entry, err := s.Cards.Redeem(ctx, cardNo, userID)
	if err != nil {
		return nil, asBizError(err)
	}
	return toLedgerEntry(entry), nil
}

// CreateCards 批量制卡，卡号由生成器保证全局唯一
func (s *CardService) CreateCards(ctx context.Context, req *types.CreateCardsReq) ([]types.ExchangeCard, error) {
	cards := make([]*models.ExchangeCard, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		no, err := s.Gen.Next()
		if err != nil {
			return nil, err
		}
		cards = append(cards, &models.ExchangeCard{
			CardNo: no,
			Name:   req.Name,
			Points: req.Points,
			Note:   req.Note,
		})
	}
	if err := s.Cards.CreateBatch(ctx, cards); err != nil {
		return nil, asBizError(err)
	}

	out := make([]types.ExchangeCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, *toCard(c))
	}
	return out, nil
}

func (s *CardService) GetCard(ctx context.Context, cardNo string) (*types.ExchangeCard, error) {
	card, err := s.Cards.FindByNo(ctx, strings.TrimSpace(strings.ToUpper(cardNo)))
	if err != nil {
		return nil, asBizError(err)
	}
	return toCard(card), nil
}

func (s *CardService) ListCards(ctx context.Context, req *types.ListCardsReq) (*types.CardPage, error) {
	cards, total, err := s.Cards.ListCards(ctx, dao.CardFilter{
		Consumed: req.Consumed,
		Search:   req.Search,
		Limit:    normalizeLimit(req.Limit),
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, asBizError(err)
	}

	page := &types.CardPage{
		Cards: make([]types.ExchangeCard, 0, len(cards)),
		Total: total,
	}
	for i := range cards {
		page.Cards = append(page.Cards, *toCard(&cards[i]))
	}
	return page, nil
}
