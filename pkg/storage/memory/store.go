// Package memory is an in-process implementation of the storage interfaces for
// local runs and tests. Conditional transitions mirror the DynamoDB store.
package memory

import (
	"sync"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

type walletKey struct {
	principal string
	asset     models.Asset
}

// Store holds every collection behind a single mutex.
type Store struct {
	mu          sync.Mutex
	accounts    map[string]models.Account
	agents      map[string]models.Agent
	agreements  map[string]models.Agreement
	wallets     map[walletKey]models.Wallet
	entries     []models.LedgerEntry
	connections map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:    make(map[string]models.Account),
		agents:      make(map[string]models.Agent),
		agreements:  make(map[string]models.Agreement),
		wallets:     make(map[walletKey]models.Wallet),
		connections: make(map[string]string),
	}
}

var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
)
