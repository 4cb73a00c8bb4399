package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/token"
)

// token issues an access token for an identity. The identity is prompted
// for when missing; the secret comes from -s or a no-echo prompt.
func (a *App) token(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("token [identity]: %w", ErrUsage)
	}

	var identity string
	if len(args) == 1 {
		identity = args[0]
	} else {
		var err error
		identity, err = GetSimpleText(a.reader, "Identity", a.out)
		if err != nil {
			return err
		}
	}
	if identity == "" {
		return fmt.Errorf("identity must not be empty: %w", ErrUsage)
	}

	secret := []byte(a.config.SecretKey)
	if len(secret) == 0 {
		var err error
		secret, err = GetSecret("Enter secret key: ", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(secret)
	}

	tok, err := token.GenerateToken(identity, secret, a.config.TokenValidityDuration)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, tok)
	return nil
}

func (a *App) ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
