package cli

import (
	"context"
	"fmt"
)

func (a *App) mint(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("mint <user> <amount>: %w", ErrUsage)
	}
	if err := a.client.Mint(ctx, args[0], args[1]); err != nil {
		return err
	}
	return a.printBalance(ctx, args[0])
}

func (a *App) redeem(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("redeem <user> <amount>: %w", ErrUsage)
	}
	if err := a.client.Redeem(ctx, args[0], args[1]); err != nil {
		return err
	}
	return a.printBalance(ctx, args[0])
}

func (a *App) balance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("balance <user>: %w", ErrUsage)
	}
	return a.printBalance(ctx, args[0])
}

func (a *App) reset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("reset <user>: %w", ErrUsage)
	}
	if err := a.client.ResetBalance(ctx, args[0]); err != nil {
		return err
	}
	return a.printBalance(ctx, args[0])
}

func (a *App) printBalance(ctx context.Context, user string) error {
	points, err := a.client.GetBalance(ctx, user)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s points\n", user, points)
	return nil
}
