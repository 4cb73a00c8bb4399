// Package services contains the ledger business logic: the reward ledger,
// the file-sync ledger and blob URL presigning.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
)

// RewardService keeps a non-negative point balance per user id. The user id
// is caller-supplied; no caller authentication is applied.
type RewardService struct {
	host   kv.Host
	logger logging.Logger
}

func NewRewardService(host kv.Host, logger logging.Logger) *RewardService {
	return &RewardService{host: host, logger: logger.With("module", "rewards")}
}

// Mint adds amount to user's balance, creating the balance on first use.
func (s *RewardService) Mint(ctx context.Context, user models.UserID, amount models.Points) error {
	if amount.Sign() <= 0 {
		return common.ErrorInvalidAmount
	}

	var balance models.Points
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		bal := models.RewardBalance{User: user}
		if _, err := st.Get(ctx, rewardKey(user), &bal); err != nil {
			return err
		}
		points, err := bal.Points.Add(amount)
		if err != nil {
			return fmt.Errorf("mint %s to %q: %w", amount, user, err)
		}
		bal.Points = points
		balance = points
		return st.Set(ctx, rewardKey(user), bal)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "rewards minted", "user", user, "amount", amount.String(), "balance", balance.String())
	return nil
}

// Redeem burns amount from user's balance. A user who never minted has no
// balance record and gets common.ErrorNotFound.
func (s *RewardService) Redeem(ctx context.Context, user models.UserID, amount models.Points) error {
	if amount.Sign() <= 0 {
		return common.ErrorInvalidAmount
	}

	var balance models.Points
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		var bal models.RewardBalance
		found, err := st.Get(ctx, rewardKey(user), &bal)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no rewards for user %q: %w", user, common.ErrorNotFound)
		}
		if bal.Points.Cmp(amount) < 0 {
			return fmt.Errorf("redeem %s from %q with %s: %w", amount, user, bal.Points, common.ErrorInsufficientBalance)
		}
		points, err := bal.Points.Sub(amount)
		if err != nil {
			return err
		}
		bal.Points = points
		balance = points
		return st.Set(ctx, rewardKey(user), bal)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "rewards redeemed", "user", user, "amount", amount.String(), "balance", balance.String())
	return nil
}

// GetBalance returns user's points, 0 when the user has no record.
func (s *RewardService) GetBalance(ctx context.Context, user models.UserID) (models.Points, error) {
	var bal models.RewardBalance
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		_, err := st.Get(ctx, rewardKey(user), &bal)
		return err
	})
	return bal.Points, err
}

// ResetBalance sets user's points to 0, creating the record if needed.
func (s *RewardService) ResetBalance(ctx context.Context, user models.UserID) error {
	err := s.host.Invoke(ctx, func(ctx context.Context, st kv.Store) error {
		return st.Set(ctx, rewardKey(user), models.RewardBalance{User: user, Points: models.NewPoints(0)})
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "rewards reset", "user", user)
	return nil
}
