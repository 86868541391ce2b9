package bridge

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sigweihq/ual-lynx/pkg/types"
)

// ErrUnavailable is returned when the wallet object has not been injected
var ErrUnavailable = errors.New("lynx wallet bridge is not available")

// Bridge is the API the Lynx in-app browser injects into the page
// Every call may block on user interaction inside the wallet
type Bridge interface {
	// RequestSetAccount asks the wallet for the currently selected account
	RequestSetAccount(ctx context.Context) (*types.AccountInfo, error)

	// Transact hands an opaque transaction to the wallet for signing and broadcast
	Transact(ctx context.Context, transaction any) (*types.TransactResult, error)

	// RequestArbitrarySignature asks the wallet to sign arbitrary data
	RequestArbitrarySignature(ctx context.Context, req types.ArbitrarySignatureRequest) (string, error)
}

// Locator finds the injected wallet bridge
type Locator interface {
	// Bridge returns the bridge and true once it has been injected
	Bridge() (Bridge, bool)
}

// LoadNotifier is an optional interface for locators that announce when the bridge loads
// Implemented by: Injected
type LoadNotifier interface {
	// Loaded returns a channel closed once the bridge is available
	Loaded() <-chan struct{}
}

// Environment exposes the runtime signal used to detect the Lynx browser
type Environment interface {
	UserAgent() string
}

// UserAgent is a fixed Environment
type UserAgent string

// UserAgent implements Environment
func (u UserAgent) UserAgent() string {
	return string(u)
}

// IsWalletBrowser reports whether the user agent carries the marker (case-insensitive)
func IsWalletBrowser(env Environment, marker string) bool {
	if env == nil {
		return false
	}
	return strings.Contains(strings.ToLower(env.UserAgent()), strings.ToLower(marker))
}

// IsUserAgent reports whether the user agent equals want, ignoring case and surrounding spaces
func IsUserAgent(env Environment, want string) bool {
	if env == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(env.UserAgent()), want)
}

// Injected is a Locator whose bridge is published by the host once the wallet loads
type Injected struct {
	bridge Bridge
	loaded chan struct{}
	once   sync.Once
	mu     sync.RWMutex
}

// Verify Injected implements both locator interfaces
var _ Locator = (*Injected)(nil)
var _ LoadNotifier = (*Injected)(nil)

// NewInjected creates a locator with no bridge yet
func NewInjected() *Injected {
	return &Injected{
		loaded: make(chan struct{}),
	}
}

// Inject publishes the bridge and fires the loaded signal
// The loaded signal fires only once; later calls replace the bridge.
// Injecting nil withdraws the bridge but leaves the signal fired, so
// readers of Loaded must still confirm with Bridge.
func (i *Injected) Inject(b Bridge) {
	i.mu.Lock()
	i.bridge = b
	i.mu.Unlock()

	if b != nil {
		i.once.Do(func() { close(i.loaded) })
	}
}

// Bridge implements Locator
func (i *Injected) Bridge() (Bridge, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.bridge, i.bridge != nil
}

// Loaded implements LoadNotifier
func (i *Injected) Loaded() <-chan struct{} {
	return i.loaded
}
