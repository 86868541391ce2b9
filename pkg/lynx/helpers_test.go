package lynx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/sigweihq/ual-lynx/pkg/config"
	"github.com/sigweihq/ual-lynx/pkg/constants"
	"github.com/sigweihq/ual-lynx/pkg/scheduler"
	"github.com/sigweihq/ual-lynx/pkg/types"
	"github.com/sigweihq/ual-lynx/pkg/ual"
	"github.com/stretchr/testify/require"
)

const (
	lynxAndroidUA  = "Mozilla/5.0 (Linux; Android 9; Pixel 3) AppleWebKit/537.36 EOSLynx Android"
	desktopUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_0) AppleWebKit/537.36 Chrome/70.0"
	unsupportedID  = "687fa513e18843ad3e820744f4ffcf93b1354036d80737db8dc444fe4b15ad17"
	testTxID       = "5d5e7b1c1bd0e7c4f2a7f2e5b3c8e7c8e1d2a3b4c5d6e7f8091a2b3c4d5e6f70"
	testSignature  = "SIG_K1_KZ6yj3sDjr9uV8PFi1bgM6NGbyJpaZqsrgCm3iGpzJ3FrvZ7rYbALaXTYu2d4Lya2jYRt2QaEZCAxc7EuFBo8z7oUTtDuB"
	quickProbeTick = 5 * time.Millisecond
)

var mainnet = ual.Chain{
	ChainID: constants.LynxMainnetChainID,
	RPCEndpoints: []ual.RPCEndpoint{
		{Protocol: "https", Host: "eos.greymass.com", Port: 443},
	},
}

// fakeBridge records calls so tests can assert how often the wallet was contacted
type fakeBridge struct {
	mu sync.Mutex

	account    *types.AccountInfo
	accountErr error
	txResult   *types.TransactResult
	txErr      error
	signature  string
	sigErr     error

	accountCalls  int
	transactCalls int
	signCalls     int
	lastTx        any
	lastSigReq    types.ArbitrarySignatureRequest
}

func (f *fakeBridge) RequestSetAccount(ctx context.Context) (*types.AccountInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	return f.account, f.accountErr
}

func (f *fakeBridge) Transact(ctx context.Context, transaction any) (*types.TransactResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactCalls++
	f.lastTx = transaction
	return f.txResult, f.txErr
}

func (f *fakeBridge) RequestArbitrarySignature(ctx context.Context, req types.ArbitrarySignatureRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signCalls++
	f.lastSigReq = req
	return f.signature, f.sigErr
}

func (f *fakeBridge) calls() (account, transact, sign int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accountCalls, f.transactCalls, f.signCalls
}

func loadAccountFixture(t *testing.T) *types.AccountInfo {
	t.Helper()
	data, err := os.ReadFile("testdata/account.json")
	require.NoError(t, err)

	var info types.AccountInfo
	require.NoError(t, json.Unmarshal(data, &info))
	return &info
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// quickPollConfig keeps wall-clock probes short
func quickPollConfig(attempts int) config.Config {
	cfg := config.Default()
	cfg.PollInterval = quickProbeTick
	cfg.PollAttempts = attempts
	return cfg
}

// startInit runs Init in the background and returns a channel closed when it returns
func startInit(ctx context.Context, a *Authenticator) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Init(ctx)
	}()
	return done
}

// advanceWhenScheduled waits until the probe has scheduled its next task, then fires it
func advanceWhenScheduled(t *testing.T, sched *scheduler.Manual, d time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool { return sched.Pending() == 1 }, time.Second, time.Millisecond)
	sched.Advance(d)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Init did not return")
	}
}
