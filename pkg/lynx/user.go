package lynx

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sigweihq/ual-lynx/pkg/bridge"
	"github.com/sigweihq/ual-lynx/pkg/constants"
	"github.com/sigweihq/ual-lynx/pkg/metrics"
	"github.com/sigweihq/ual-lynx/pkg/types"
	"github.com/sigweihq/ual-lynx/pkg/ual"
)

// User is the account selected in the Lynx wallet
type User struct {
	account types.Account
	chainID string
	locator bridge.Locator
	env     bridge.Environment
	metrics *metrics.Metrics
	logger  *slog.Logger

	keys     []string
	keysOnce sync.Once
}

// Verify User implements the host contract
var _ ual.User = (*User)(nil)

func newUser(chain *ual.Chain, info *types.AccountInfo, locator bridge.Locator, env bridge.Environment, m *metrics.Metrics, logger *slog.Logger) *User {
	u := &User{
		account: info.Account,
		locator: locator,
		env:     env,
		metrics: m,
		logger:  logger,
	}
	if chain != nil {
		u.chainID = chain.ChainID
	}
	return u
}

// NewUser wraps an account returned by the wallet
// chain may be nil, in which case GetChainID returns an empty string
func NewUser(chain *ual.Chain, info *types.AccountInfo, locator bridge.Locator, env bridge.Environment) *User {
	if info == nil {
		info = &types.AccountInfo{}
	}
	return newUser(chain, info, locator, env, nil, slog.Default())
}

// SignTransaction implements ual.User
// The transaction is handed to the wallet as-is; the wallet signs and broadcasts it.
func (u *User) SignTransaction(ctx context.Context, transaction any, _ ual.SignTransactionConfig) (*ual.SignTransactionResponse, error) {
	b, err := u.lookupBridge()
	if err != nil {
		u.metrics.ObserveSign(metrics.KindTransaction, metrics.ResultError)
		return nil, NewError(constants.MsgSignTransaction, ual.ErrorTypeSigning, err)
	}

	result, err := b.Transact(ctx, transaction)
	if err != nil {
		u.logger.Error("wallet transact failed", "account", u.account.AccountName, "error", err)
		u.metrics.ObserveSign(metrics.KindTransaction, metrics.ResultError)
		return nil, NewError(constants.MsgSignTransaction, ual.ErrorTypeSigning, err)
	}
	if result == nil {
		result = &types.TransactResult{}
	}

	u.metrics.ObserveSign(metrics.KindTransaction, metrics.ResultSuccess)
	return &ual.SignTransactionResponse{
		WasBroadcast:  true,
		TransactionID: result.TransactionID,
		Transaction:   result,
	}, nil
}

// SignArbitrary implements ual.User
// Only the iOS build of the wallet can sign arbitrary data.
func (u *User) SignArbitrary(ctx context.Context, _ string, data, helpText string) (string, error) {
	if !bridge.IsUserAgent(u.env, constants.IOSUserAgent) {
		u.metrics.ObserveSign(metrics.KindArbitrary, metrics.ResultUnsupported)
		return "", NewError(constants.MsgArbitraryOnlyOnIOS, ual.ErrorTypeSigning, nil)
	}

	b, err := u.lookupBridge()
	if err != nil {
		u.metrics.ObserveSign(metrics.KindArbitrary, metrics.ResultError)
		return "", NewError(constants.MsgSignArbitrary, ual.ErrorTypeSigning, err)
	}

	signature, err := b.RequestArbitrarySignature(ctx, types.ArbitrarySignatureRequest{
		Data:    data,
		WhatFor: helpText,
	})
	if err != nil {
		u.logger.Error("wallet arbitrary signature failed", "account", u.account.AccountName, "error", err)
		u.metrics.ObserveSign(metrics.KindArbitrary, metrics.ResultError)
		return "", NewError(constants.MsgSignArbitrary, ual.ErrorTypeSigning, err)
	}

	u.metrics.ObserveSign(metrics.KindArbitrary, metrics.ResultSuccess)
	return signature, nil
}

// VerifyKeyOwnership implements ual.User
func (u *User) VerifyKeyOwnership(ctx context.Context, _ string) (bool, error) {
	return false, ErrVerifyKeyOwnershipUnsupported
}

// GetAccountName implements ual.User
func (u *User) GetAccountName(ctx context.Context) (string, error) {
	return u.account.AccountName, nil
}

// GetChainID implements ual.User
func (u *User) GetChainID(ctx context.Context) (string, error) {
	return u.chainID, nil
}

// GetKeys implements ual.User
// Returns the keys of the active permission, in order. Computed once.
func (u *User) GetKeys(ctx context.Context) ([]string, error) {
	u.keysOnce.Do(func() {
		u.keys = []string{}
		if perm, ok := u.account.Permission(constants.ActivePermission); ok {
			for _, key := range perm.RequiredAuth.Keys {
				u.keys = append(u.keys, key.Key)
			}
		}
	})
	keys := make([]string, len(u.keys))
	copy(keys, u.keys)
	return keys, nil
}

func (u *User) lookupBridge() (bridge.Bridge, error) {
	if u.locator == nil {
		return nil, bridge.ErrUnavailable
	}
	b, ok := u.locator.Bridge()
	if !ok {
		return nil, bridge.ErrUnavailable
	}
	return b, nil
}
