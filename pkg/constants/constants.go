package constants

import "time"

// Name identifies this authenticator to the host framework and tags every error it produces
const Name = "Lynx"

const (
	PollInterval     = 500 * time.Millisecond // delay between wallet presence checks
	PollAttempts     = 10                     // maximum number of scheduled presence checks
	LoadTimeout      = 5 * time.Second        // how long to wait for the wallet loaded signal
	MaxProbeDuration = 5 * time.Second        // upper bound for any readiness probe
)

// Probe strategies
const (
	ProbeStrategyPoll  = "poll"
	ProbeStrategyEvent = "event"
)

// Lynx only supports EOS mainnet
const LynxMainnetChainID = "aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906"

const (
	WalletBrowserMarker = "eoslynx"     // lower-cased user agent substring of the Lynx in-app browser
	IOSUserAgent        = "EOSLynx IOS" // exact user agent of the iOS Lynx browser
	OnboardingLink      = "https://eoslynx.com/"
	ActivePermission    = "active"
)

// Error messages reported to the host framework
const (
	MsgInitFailed           = "Error occurred during autologin"
	MsgUnableToConnect      = "Unable to connect"
	MsgLoginFailed          = "Unable to get the current account during login"
	MsgSignTransaction      = "Unable to sign the given transaction"
	MsgSignArbitrary        = "Unable to sign arbitrary string"
	MsgArbitraryOnlyOnIOS   = "Arbitrary data signing is only support on iOS"
	MsgVerifyKeyUnsupported = "Lynx does not currently support verifyKeyOwnership"
)
