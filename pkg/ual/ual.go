package ual

import (
	"context"

	"github.com/sigweihq/ual-lynx/pkg/types"
)

// Contract modelled on the Universal Authenticator Library
// https://github.com/EOSIO/universal-authenticator-library

// RPCEndpoint describes a node serving a chain's API
type RPCEndpoint struct {
	Protocol string `json:"protocol" yaml:"protocol"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
}

// Chain is a chain the host application wants to authenticate against
type Chain struct {
	ChainID      string        `json:"chainId" yaml:"chainId"`
	RPCEndpoints []RPCEndpoint `json:"rpcEndpoints" yaml:"rpcEndpoints"`
}

// SignTransactionConfig carries host preferences for signing
type SignTransactionConfig struct {
	Broadcast     bool `json:"broadcast"`
	BlocksBehind  int  `json:"blocksBehind,omitempty"`
	ExpireSeconds int  `json:"expireSeconds,omitempty"`
}

// SignTransactionResponse is returned after a transaction has been handed to a wallet
type SignTransactionResponse struct {
	WasBroadcast  bool
	TransactionID string
	Transaction   *types.TransactResult
}

// Authenticator is implemented by every wallet provider the host can render
type Authenticator interface {
	// GetName returns the provider's identity tag
	GetName() string

	// Init prepares the provider; failures are recorded and exposed through GetError
	Init(ctx context.Context)

	// Reset clears any error and re-runs Init in the background
	Reset()

	// IsLoading reports whether Init is still in progress
	IsLoading() bool

	// IsErrored reports whether Init recorded an error
	IsErrored() bool

	// GetError returns the recorded initialization error, or nil
	GetError() *Error

	// GetOnboardingLink returns where users can install the wallet
	GetOnboardingLink() string

	// ShouldRender reports whether the provider can be offered in the current environment
	ShouldRender() bool

	// ShouldAutoLogin reports whether the host may log in without user interaction
	ShouldAutoLogin() bool

	// ShouldRequestAccountName reports whether the host must ask the user for an account name
	ShouldRequestAccountName(ctx context.Context) (bool, error)

	// Login authenticates and returns the available users
	Login(ctx context.Context, accountName string) ([]User, error)

	// Logout clears authenticated users
	Logout(ctx context.Context) error

	// RequiresGetKeyConfirmation reports whether GetKeys must be confirmed by the user
	RequiresGetKeyConfirmation() bool
}

// User is an authenticated account able to sign on one chain
type User interface {
	SignTransaction(ctx context.Context, transaction any, config SignTransactionConfig) (*SignTransactionResponse, error)
	SignArbitrary(ctx context.Context, publicKey, data, helpText string) (string, error)
	VerifyKeyOwnership(ctx context.Context, challenge string) (bool, error)
	GetAccountName(ctx context.Context) (string, error)
	GetChainID(ctx context.Context) (string, error)
	GetKeys(ctx context.Context) ([]string, error)
}
