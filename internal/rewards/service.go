package rewards

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ecospot/internal/logger"
	"ecospot/internal/metrics"
	"ecospot/internal/user"

	"github.com/google/uuid"
)

var (
	ErrRewardNotFound    = errors.New("reward not found")
	ErrWalletTopUpFailed = errors.New("wallet top up failed")
)

// FactSource yields the reservation facts the points engine scores,
// newest first.
type FactSource interface {
	ListFacts(ctx context.Context, userID int) ([]ReservationFact, error)
}

// WalletCreditor grants credits from a finished conversion. The ref is
// the redemption record id, so wallet history and ledger reconcile.
type WalletCreditor interface {
	CreditConversion(ctx context.Context, userID int, credits int64, ref string) error
}

// Notifier sends redemption confirmations. Implementations enqueue, so
// failures never block the redemption itself.
type Notifier interface {
	SendConversionConfirmation(ctx context.Context, to, name string, points int, credits int64) error
	SendRedemptionConfirmation(ctx context.Context, to, name, rewardTitle string, points int) error
}

type Service interface {
	Summary(ctx context.Context, userID int) (*SummaryResponse, error)
	History(ctx context.Context, userID int) ([]RedemptionRecord, error)
	Catalog() []Reward
	ConvertToWallet(ctx context.Context, userID, points int) (*RedemptionRecord, error)
	RedeemReward(ctx context.Context, userID int, rewardID string) (*RedemptionRecord, error)
}

type service struct {
	facts    FactSource
	wallet   WalletCreditor
	ledger   *Ledger
	catalog  []Reward
	users    user.Repository
	notifier Notifier
	now      func() time.Time
}

// NewService wires the rewards coordinator. users and notifier may be
// nil; confirmations are then skipped.
func NewService(facts FactSource, wallet WalletCreditor, ledger *Ledger, catalog []Reward, users user.Repository, notifier Notifier) Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &service{
		facts:    facts,
		wallet:   wallet,
		ledger:   ledger,
		catalog:  catalog,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func userKey(userID int) string {
	return strconv.Itoa(userID)
}

// balance is the point of truth for what a user may still spend.
type balance struct {
	summary            ActivitySummary
	redeemed           int
	available          int
	convertedThisMonth int
}

func (s *service) loadBalance(ctx context.Context, userID int) (*balance, error) {
	facts, err := s.facts.ListFacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservation facts: %w", err)
	}

	key := userKey(userID)

	redeemed, err := s.ledger.RedeemedPoints(ctx, key)
	if err != nil {
		return nil, err
	}

	converted, err := s.ledger.WalletPointsInMonth(ctx, key, s.now())
	if err != nil {
		return nil, err
	}

	summary := Summarize(facts)

	available := summary.TotalPoints - redeemed
	if available < 0 {
		available = 0
	}

	return &balance{
		summary:            summary,
		redeemed:           redeemed,
		available:          available,
		convertedThisMonth: converted,
	}, nil
}

func (s *service) Summary(ctx context.Context, userID int) (*SummaryResponse, error) {
	bal, err := s.loadBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		TotalPoints:         bal.summary.TotalPoints,
		RedeemedPoints:      bal.redeemed,
		AvailablePoints:     bal.available,
		TripCount:           bal.summary.TripCount,
		TotalSavingsKg:      bal.summary.TotalSavingsKg,
		RecentActivity:      bal.summary.RecentActivity,
		Tier:                TierFor(bal.available),
		ConvertedThisMonth:  bal.convertedThisMonth,
		SuggestedConversion: SuggestedConversion(bal.available, bal.convertedThisMonth),
		CanConvert:          Eligible(bal.available, bal.summary.TripCount, bal.convertedThisMonth),
	}, nil
}

func (s *service) History(ctx context.Context, userID int) ([]RedemptionRecord, error) {
	return s.ledger.Load(ctx, userKey(userID))
}

func (s *service) Catalog() []Reward {
	return s.catalog
}

// ConvertToWallet validates against the guard, credits the wallet, then
// appends to the ledger. The ledger write happens only after the credit
// succeeds; if the ledger write itself fails the credit stands and the
// caller gets the record back alongside ErrLedgerAppendFailed.
func (s *service) ConvertToWallet(ctx context.Context, userID, points int) (*RedemptionRecord, error) {
	bal, err := s.loadBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := ConversionRequest{
		PointsToConvert:    points,
		AvailablePoints:    bal.available,
		TripCount:          bal.summary.TripCount,
		ConvertedThisMonth: bal.convertedThisMonth,
	}
	if err := ValidateConversion(req); err != nil {
		metrics.RecordConversionRejection(RejectReason(err))
		return nil, err
	}

	credits := int64(points / PointsPerCredit)

	rec := RedemptionRecord{
		ID:        uuid.NewString(),
		Kind:      KindWallet,
		Points:    points,
		Credits:   credits,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.wallet.CreditConversion(ctx, userID, credits, rec.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWalletTopUpFailed, err)
	}

	if err := s.ledger.Append(ctx, userKey(userID), rec); err != nil {
		logger.Error("conversion credited but not recorded", "user_id", userID, "record_id", rec.ID, "error", err)
		return &rec, err
	}

	metrics.RecordPointsConversion(points)
	s.notifyConversion(ctx, userID, points, credits)

	return &rec, nil
}

// RedeemReward spends points on a catalog item. Redemptions have no
// monthly cap; the only amount rule is having enough available points.
func (s *service) RedeemReward(ctx context.Context, userID int, rewardID string) (*RedemptionRecord, error) {
	var reward *Reward
	for i := range s.catalog {
		if s.catalog[i].ID == rewardID {
			reward = &s.catalog[i]
			break
		}
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	bal, err := s.loadBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if reward.Points > bal.available {
		return nil, ErrInsufficientPoints
	}

	rec := RedemptionRecord{
		ID:        uuid.NewString(),
		Kind:      KindReward,
		Points:    reward.Points,
		Title:     reward.Title,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.ledger.Append(ctx, userKey(userID), rec); err != nil {
		return nil, err
	}

	metrics.RecordRewardRedemption(reward.ID)
	s.notifyRedemption(ctx, userID, reward.Title, reward.Points)

	return &rec, nil
}

func (s *service) notifyConversion(ctx context.Context, userID, points int, credits int64) {
	if s.users == nil || s.notifier == nil {
		return
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Error("failed to load user for conversion email", "user_id", userID, "error", err)
		return
	}
	if err := s.notifier.SendConversionConfirmation(ctx, u.Email, u.Name, points, credits); err != nil {
		logger.Error("failed to enqueue conversion email", "user_id", userID, "error", err)
	}
}

func (s *service) notifyRedemption(ctx context.Context, userID int, title string, points int) {
	if s.users == nil || s.notifier == nil {
		return
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Error("failed to load user for redemption email", "user_id", userID, "error", err)
		return
	}
	if err := s.notifier.SendRedemptionConfirmation(ctx, u.Email, u.Name, title, points); err != nil {
		logger.Error("failed to enqueue redemption email", "user_id", userID, "error", err)
	}
}
