package types

import "encoding/json"

// AccountInfo is the payload returned by the wallet's requestSetAccount call
// Matches the EOSIO get_account response wrapped under "account"
type AccountInfo struct {
	Account Account `json:"account"`
}

// Account represents the subset of an EOSIO account the authenticator reads
type Account struct {
	AccountName       string       `json:"account_name"`
	HeadBlockNum      int64        `json:"head_block_num,omitempty"`
	CoreLiquidBalance string       `json:"core_liquid_balance,omitempty"`
	Permissions       []Permission `json:"permissions"`
}

// Permission represents a named account permission (e.g., "owner", "active")
type Permission struct {
	PermName     string       `json:"perm_name"`
	Parent       string       `json:"parent"`
	RequiredAuth RequiredAuth `json:"required_auth"`
}

// RequiredAuth holds the authority required to satisfy a permission
type RequiredAuth struct {
	Threshold uint32      `json:"threshold"`
	Keys      []KeyWeight `json:"keys"`
}

// KeyWeight is a public key and the weight it contributes to a threshold
type KeyWeight struct {
	Key    string `json:"key"`
	Weight uint16 `json:"weight"`
}

// Permission returns the permission with the given name, if present
func (a *Account) Permission(name string) (*Permission, bool) {
	for i := range a.Permissions {
		if a.Permissions[i].PermName == name {
			return &a.Permissions[i], true
		}
	}
	return nil, false
}

// TransactResult is the wallet's response to a transact call
// Only transaction_id is interpreted; Raw holds the whole payload as received
type TransactResult struct {
	TransactionID string          `json:"transaction_id"`
	Processed     json.RawMessage `json:"processed,omitempty"`
	Raw           json.RawMessage `json:"-"`
}

type transactResultFields TransactResult

// UnmarshalJSON decodes the known fields and keeps a copy of the full payload
func (r *TransactResult) UnmarshalJSON(data []byte) error {
	var fields transactResultFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = TransactResult(fields)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the payload as the wallet sent it when available
func (r TransactResult) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(transactResultFields(r))
}

// ArbitrarySignatureRequest is the argument for the wallet's requestArbitrarySignature call
type ArbitrarySignatureRequest struct {
	Data    string `json:"data"`
	WhatFor string `json:"whatFor"`
}
