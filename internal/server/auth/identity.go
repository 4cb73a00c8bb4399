// Package auth implements the caller authentication check used by the
// file-sync ledger: the verified identity travels in the request context.
package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/dmitrijs2005/fileledger/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the verified caller identity.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the verified caller identity, if any.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok && id != ""
}

// Authenticator asserts that the current invocation is authorized as a
// given identity.
type Authenticator interface {
	RequireIdentity(ctx context.Context, claimed models.Identity) error
}

// ContextAuthenticator trusts the identity that the transport layer placed
// in the context after verifying the caller's token.
type ContextAuthenticator struct{}

func (ContextAuthenticator) RequireIdentity(ctx context.Context, claimed models.Identity) error {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return fmt.Errorf("no verified caller, require %q: %w", claimed, common.ErrorUnauthorized)
	}
	if id != claimed {
		return fmt.Errorf("caller %q is not %q: %w", id, claimed, common.ErrorUnauthorized)
	}
	return nil
}
