package ledger

import (
	"fmt"
	"maps"
	"math"
)

// BalanceIndex is the running balance of every account seen on the chain.
// It is not safe for concurrent use; Ledger guards it with its chain lock.
type BalanceIndex struct {
	balances map[string]int64
}

// NewBalanceIndex returns an empty index
func NewBalanceIndex() *BalanceIndex {
	return &BalanceIndex{balances: make(map[string]int64)}
}

// Balance returns the balance of account, zero if it never appeared
func (ix *BalanceIndex) Balance(account string) int64 {
	return ix.balances[account]
}

// Apply folds every transaction of block into the index, or none of them on error
func (ix *BalanceIndex) Apply(block *Block) error {
	staged, err := ix.stage(block)
	if err != nil {
		return err
	}
	ix.merge(staged)
	return nil
}

// Snapshot returns a copy of all balances
func (ix *BalanceIndex) Snapshot() map[string]int64 {
	return maps.Clone(ix.balances)
}

// stage computes the new balances of the accounts touched by block without changing the index
func (ix *BalanceIndex) stage(block *Block) (map[string]int64, error) {
	staged := make(map[string]int64)
	current := func(account string) int64 {
		if v, ok := staged[account]; ok {
			return v
		}
		return ix.balances[account]
	}

	for _, tx := range block.Transactions {
		from, to := current(tx.Sender), current(tx.Receiver)
		if from < math.MinInt64+tx.Amount || to > math.MaxInt64-tx.Amount {
			return nil, fmt.Errorf("balance overflow applying transaction %s", tx.ID)
		}
		staged[tx.Sender] = from - tx.Amount
		// re-read: sender and receiver may be the same account
		staged[tx.Receiver] = current(tx.Receiver) + tx.Amount
	}
	return staged, nil
}

func (ix *BalanceIndex) merge(staged map[string]int64) {
	maps.Copy(ix.balances, staged)
}

// Replay folds the whole chain from genesis: every transaction subtracts its amount
// from the sender and adds it to the receiver, in block then transaction order.
func Replay(blocks []*Block) map[string]int64 {
	balances := make(map[string]int64)
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			balances[tx.Sender] -= tx.Amount
			balances[tx.Receiver] += tx.Amount
		}
	}
	return balances
}
