package chains

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sigweihq/ual-lynx/pkg/constants"
	"github.com/sigweihq/ual-lynx/pkg/ual"
)

// SupportedSet is a fixed set of chain ids an authenticator can serve
// It is built once and never mutated, so it is safe for concurrent use
type SupportedSet struct {
	chains map[common.Hash]struct{}
}

// NewSupportedSet builds a set from hex chain ids
// Every id must be a 32-byte hex string
func NewSupportedSet(chainIDs ...string) (*SupportedSet, error) {
	s := &SupportedSet{
		chains: make(map[common.Hash]struct{}, len(chainIDs)),
	}
	for _, id := range chainIDs {
		hash, err := ParseChainID(id)
		if err != nil {
			return nil, err
		}
		s.chains[hash] = struct{}{}
	}
	return s, nil
}

// LynxSupportedSet returns the chains the Lynx wallet serves (EOS mainnet only)
func LynxSupportedSet() *SupportedSet {
	s, err := NewSupportedSet(constants.LynxMainnetChainID)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in chain id: %v", err))
	}
	return s
}

// ParseChainID decodes a 32-byte chain id
// Only the canonical form is accepted: 64 lower-case hex characters, no prefix
func ParseChainID(chainID string) (common.Hash, error) {
	raw, err := hexutil.Decode("0x" + chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid chain id %q: %w", chainID, err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid chain id %q: expected %d bytes, got %d", chainID, common.HashLength, len(raw))
	}
	hash := common.BytesToHash(raw)
	if strings.TrimPrefix(hash.Hex(), "0x") != chainID {
		return common.Hash{}, fmt.Errorf("invalid chain id %q: not lower-case hex", chainID)
	}
	return hash, nil
}

// IsSupported checks if a chain id is a member of the set
// Malformed ids are never supported
func (s *SupportedSet) IsSupported(chainID string) bool {
	hash, err := ParseChainID(chainID)
	if err != nil {
		return false
	}
	_, ok := s.chains[hash]
	return ok
}

// SupportsAll reports whether every chain is supported
// An empty chain list is never supported
func (s *SupportedSet) SupportsAll(chains []ual.Chain) bool {
	if len(chains) == 0 {
		return false
	}
	for _, chain := range chains {
		if !s.IsSupported(chain.ChainID) {
			return false
		}
	}
	return true
}

// GetSupportedChainIDs returns the member chain ids as lower-case hex without prefix
func (s *SupportedSet) GetSupportedChainIDs() []string {
	ids := make([]string, 0, len(s.chains))
	for hash := range s.chains {
		ids = append(ids, strings.TrimPrefix(hash.Hex(), "0x"))
	}
	return ids
}
