package state

import (
	"encoding/binary"
	"errors"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"iamaichain/storage"
)

// Manager persists module records in the keyed store. Every record lives
// under the keccak hash of a typed prefix plus its identifying tuple, and
// values are RLP encoded. The manager satisfies the state interfaces of all
// native engines, so a single instance backs the whole node.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager over the given database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

var (
	accountPrefix     = []byte("account:")
	tokenInfoPrefix   = []byte("token:info:")
	govConfigKey      = []byte("gov:config")
	govProposalPrefix = []byte("gov:proposal:")
	govVotePrefix     = []byte("gov:vote:")
	govProposalSeqKey = []byte("gov:seq:proposal")
	marketConfigKey   = []byte("market:config")
	listingPrefix     = []byte("market:listing:")
	purchasePrefix    = []byte("market:purchase:")
	reviewPrefix      = []byte("market:review:")
	listingSeqKey     = []byte("market:seq:listing")
	stakingPoolKey    = []byte("staking:pool")
	stakingTierPrefix = []byte("staking:tier:")
	userStakePrefix   = []byte("staking:stake:")
)

func hashKey(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	buf := make([]byte, 0, size)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return ethcrypto.Keccak256(buf)
}

func uint64Key(id uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	return buf[:]
}

func (m *Manager) getRecord(key []byte, out interface{}) (bool, error) {
	data, err := m.db.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, fmt.Errorf("state: decode record: %w", err)
	}
	return true, nil
}

func (m *Manager) putRecord(key []byte, value interface{}) error {
	data, err := rlp.EncodeToBytes(value)
	if err != nil {
		return fmt.Errorf("state: encode record: %w", err)
	}
	return m.db.Put(key, data)
}

// nextSequence increments and returns the counter stored under key. The
// first call returns 1.
func (m *Manager) nextSequence(key []byte) (uint64, error) {
	var current uint64
	if _, err := m.getRecord(key, &current); err != nil {
		return 0, err
	}
	next := current + 1
	if err := m.putRecord(key, next); err != nil {
		return 0, err
	}
	return next, nil
}
