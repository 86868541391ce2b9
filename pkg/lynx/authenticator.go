package lynx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sigweihq/ual-lynx/pkg/bridge"
	"github.com/sigweihq/ual-lynx/pkg/chains"
	"github.com/sigweihq/ual-lynx/pkg/config"
	"github.com/sigweihq/ual-lynx/pkg/constants"
	"github.com/sigweihq/ual-lynx/pkg/metrics"
	"github.com/sigweihq/ual-lynx/pkg/scheduler"
	"github.com/sigweihq/ual-lynx/pkg/ual"
)

// Authenticator lets a UAL host log in through the Lynx mobile wallet browser
//
// Init and Reset may race; both write the same loading/error fields and the
// last write wins. Hosts that need Reset to finish must poll IsLoading.
type Authenticator struct {
	chains    []ual.Chain
	supported *chains.SupportedSet
	locator   bridge.Locator
	env       bridge.Environment
	sched     scheduler.Scheduler
	cfg       config.Config
	metrics   *metrics.Metrics
	logger    *slog.Logger

	loading bool
	initErr *ual.Error
	users   []ual.User
	mu      sync.Mutex
}

// Verify Authenticator implements the host contract
var _ ual.Authenticator = (*Authenticator)(nil)

// Option customizes an Authenticator
type Option func(*Authenticator)

// WithLocator sets where the wallet bridge is looked up
func WithLocator(locator bridge.Locator) Option {
	return func(a *Authenticator) { a.locator = locator }
}

// WithEnvironment sets the user agent source
func WithEnvironment(env bridge.Environment) Option {
	return func(a *Authenticator) { a.env = env }
}

// WithScheduler sets the scheduler used by the readiness probe
func WithScheduler(sched scheduler.Scheduler) Option {
	return func(a *Authenticator) { a.sched = sched }
}

// WithConfig replaces the default configuration
// A config that fails validation is replaced by config.Default when New returns
func WithConfig(cfg config.Config) Option {
	return func(a *Authenticator) { a.cfg = cfg }
}

// WithMetrics enables Prometheus instrumentation
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Authenticator) { a.metrics = m }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) { a.logger = logger }
}

// New creates an authenticator for the given chains
func New(chainList []ual.Chain, opts ...Option) *Authenticator {
	a := &Authenticator{
		chains:    append([]ual.Chain(nil), chainList...),
		supported: chains.LynxSupportedSet(),
		locator:   bridge.NewInjected(),
		env:       bridge.UserAgent(""),
		sched:     scheduler.NewTimer(),
		cfg:       config.Default(),
		logger:    slog.Default(),
		loading:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("adapter", constants.Name, "instance", uuid.NewString())
	if err := a.cfg.Validate(); err != nil {
		a.logger.Warn("invalid config, using defaults", "error", err)
		a.cfg = config.Default()
	}
	return a
}

// GetName implements ual.Authenticator
func (a *Authenticator) GetName() string {
	return constants.Name
}

// GetChains returns a copy of the configured chains
func (a *Authenticator) GetChains() []ual.Chain {
	return append([]ual.Chain(nil), a.chains...)
}

// Init implements ual.Authenticator
// The wallet injects itself from its in-app browser, so Init waits a bounded time
// for it to appear and records an Initialization error if it never does.
func (a *Authenticator) Init(ctx context.Context) {
	a.mu.Lock()
	a.loading = true
	a.initErr = nil
	a.mu.Unlock()

	started := time.Now()
	ready, err := a.probe(ctx)
	elapsed := time.Since(started)

	var initErr *ual.Error
	switch {
	case err != nil:
		a.logger.Warn("wallet readiness probe failed", "strategy", a.cfg.ProbeStrategy, "error", err)
		a.metrics.ObserveProbe(metrics.ProbeError, elapsed)
		initErr = NewError(constants.MsgInitFailed, ual.ErrorTypeInitialization, err)
	case !ready:
		a.logger.Warn("wallet did not become available", "strategy", a.cfg.ProbeStrategy, "elapsed", elapsed)
		a.metrics.ObserveProbe(metrics.ProbeTimeout, elapsed)
		initErr = NewError(constants.MsgInitFailed, ual.ErrorTypeInitialization, errUnableToConnect)
	default:
		a.logger.Info("wallet ready", "strategy", a.cfg.ProbeStrategy, "elapsed", elapsed)
		a.metrics.ObserveProbe(metrics.ProbeReady, elapsed)
	}

	a.mu.Lock()
	if initErr != nil {
		a.initErr = initErr
	}
	a.loading = false
	a.mu.Unlock()
}

// probe runs the configured readiness strategy, converting a panic in probe setup into an error
func (a *Authenticator) probe(ctx context.Context) (ready bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ready, err = false, fmt.Errorf("readiness probe panicked: %v", r)
		}
	}()

	if a.locator == nil {
		return false, bridge.ErrUnavailable
	}

	switch a.cfg.ProbeStrategy {
	case constants.ProbeStrategyEvent:
		return waitForLoadedSignal(ctx, a.locator, a.sched, a.cfg.LoadTimeout)
	default:
		return pollForBridge(ctx, a.locator, a.sched, a.cfg.PollInterval, a.cfg.PollAttempts, a.logger)
	}
}

// Reset implements ual.Authenticator
// Init runs in the background; it is not awaited.
func (a *Authenticator) Reset() {
	a.mu.Lock()
	a.initErr = nil
	a.mu.Unlock()

	go a.Init(context.Background())
}

// IsLoading implements ual.Authenticator
func (a *Authenticator) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// IsErrored implements ual.Authenticator
func (a *Authenticator) IsErrored() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initErr != nil
}

// GetError implements ual.Authenticator
func (a *Authenticator) GetError() *ual.Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initErr
}

// GetOnboardingLink implements ual.Authenticator
func (a *Authenticator) GetOnboardingLink() string {
	return constants.OnboardingLink
}

// ShouldRender implements ual.Authenticator
// Lynx is chain and environment specific: it only renders inside the Lynx browser,
// and only when every configured chain is supported.
func (a *Authenticator) ShouldRender() bool {
	if a.cfg.RequireWalletBrowser && !bridge.IsWalletBrowser(a.env, constants.WalletBrowserMarker) {
		return false
	}
	return a.supported.SupportsAll(a.chains)
}

// ShouldAutoLogin implements ual.Authenticator
// Rendering already implies being inside the Lynx browser, so autologin follows it.
func (a *Authenticator) ShouldAutoLogin() bool {
	return a.ShouldRender()
}

// ShouldRequestAccountName implements ual.Authenticator
// The wallet selects the account itself.
func (a *Authenticator) ShouldRequestAccountName(ctx context.Context) (bool, error) {
	return false, nil
}

// RequiresGetKeyConfirmation implements ual.Authenticator
func (a *Authenticator) RequiresGetKeyConfirmation() bool {
	return false
}

// Login implements ual.Authenticator
// Requests the wallet's active account; the account name argument is ignored.
// Once a user exists, later calls return it without contacting the wallet.
func (a *Authenticator) Login(ctx context.Context, accountName string) ([]ual.User, error) {
	if users := a.currentUsers(); len(users) > 0 {
		a.metrics.ObserveLogin(metrics.ResultCached)
		return users, nil
	}

	b, ok := a.lookupBridge()
	if !ok {
		a.metrics.ObserveLogin(metrics.ResultError)
		return nil, NewError(constants.MsgLoginFailed, ual.ErrorTypeLogin, bridge.ErrUnavailable)
	}

	info, err := b.RequestSetAccount(ctx)
	if err != nil {
		a.logger.Error("wallet account request failed", "error", err)
		a.metrics.ObserveLogin(metrics.ResultError)
		return nil, NewError(constants.MsgLoginFailed, ual.ErrorTypeLogin, err)
	}
	if info == nil {
		a.metrics.ObserveLogin(metrics.ResultError)
		return nil, NewError(constants.MsgLoginFailed, ual.ErrorTypeLogin, errEmptyAccount)
	}

	var chain *ual.Chain
	if len(a.chains) > 0 {
		chain = &a.chains[0]
	}
	user := newUser(chain, info, a.locator, a.env, a.metrics, a.logger)

	a.mu.Lock()
	defer a.mu.Unlock()
	// Another Login may have finished while the wallet was prompting
	if len(a.users) == 0 {
		a.users = append(a.users, user)
		a.logger.Info("logged in", "account", info.Account.AccountName)
	}
	a.metrics.ObserveLogin(metrics.ResultSuccess)
	return append([]ual.User(nil), a.users...), nil
}

// Logout implements ual.Authenticator
// This only forgets the users held here; the wallet app itself stays logged in.
func (a *Authenticator) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users = nil
	return nil
}

func (a *Authenticator) currentUsers() []ual.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.users) == 0 {
		return nil
	}
	return append([]ual.User(nil), a.users...)
}

func (a *Authenticator) lookupBridge() (bridge.Bridge, bool) {
	if a.locator == nil {
		return nil, false
	}
	return a.locator.Bridge()
}
