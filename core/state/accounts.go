package state

import (
	"iamaichain/core/types"
)

// GetAccount loads the account stored for addr. Missing accounts read as a
// fresh account with a zero balance.
func (m *Manager) GetAccount(addr []byte) (*types.Account, error) {
	key := hashKey(accountPrefix, addr)
	account := new(types.Account)
	ok, err := m.getRecord(key, account)
	if err != nil {
		return nil, err
	}
	if !ok {
		account = &types.Account{}
	}
	return account.EnsureDefaults(), nil
}

// PutAccount stores the account under addr.
func (m *Manager) PutAccount(addr []byte, account *types.Account) error {
	if account == nil {
		account = &types.Account{}
	}
	return m.putRecord(hashKey(accountPrefix, addr), account.EnsureDefaults())
}
