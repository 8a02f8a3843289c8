package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// SystemAccount is the issuing side of credits, debits and mining rewards.
	// It is an ordinary ledger participant with no lower bound: its balance goes
	// negative by every unit it issues, so total supply is not conserved across
	// user accounts alone.
	SystemAccount = "system"
	// GenesisAccount receives the zero-amount bootstrap transaction
	GenesisAccount = "Genesis"

	DefaultDifficulty = 4
	DefaultReward     = 50

	genesisPreviousHash = "0"
	genesisMemo         = "Genesis Block"
	rewardMemo          = "Mining Reward"
)

// BlockStore persists mined blocks before they join the in-memory chain
type BlockStore interface {
	SaveBlock(ctx context.Context, block *Block) error
}

// TransactionStore records transactions the ledger creates itself
type TransactionStore interface {
	SaveTransaction(ctx context.Context, tx Transaction) error
}

// Source is what Open rebuilds a ledger from
type Source interface {
	LoadBlocks(ctx context.Context) ([]*Block, error)
	LoadTransactions(ctx context.Context) ([]Transaction, error)
}

// Options configures a Ledger
type Options struct {
	// Difficulty is the number of leading zero hex digits every block hash needs
	Difficulty int
	// Reward is the amount granted to the miner when Commit is asked to
	Reward int64
	// MineTimeout bounds a single mining search; zero means no bound
	MineTimeout time.Duration
	// Store, if set, receives every block before it is appended
	Store BlockStore
	// Transactions, if set, records the genesis and reward transactions
	Transactions TransactionStore
	Logger       *zap.Logger
}

// Ledger owns the chain, the pending queue and the balance index.
type Ledger struct {
	difficulty  int
	reward      int64
	mineTimeout time.Duration
	store       BlockStore
	txs         TransactionStore
	log         *zap.Logger

	// commitMu serializes Commit from queue snapshot through append
	commitMu sync.Mutex

	queueMu sync.Mutex
	pending []Transaction

	chainMu sync.RWMutex
	chain   []*Block
	index   *BalanceIndex
	broken  error
}

func newLedger(opts Options) *Ledger {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		difficulty:  opts.Difficulty,
		reward:      opts.Reward,
		mineTimeout: opts.MineTimeout,
		store:       opts.Store,
		txs:         opts.Transactions,
		log:         logger,
		index:       NewBalanceIndex(),
	}
}

// New creates a ledger whose chain holds a freshly mined genesis block
func New(ctx context.Context, opts Options) (*Ledger, error) {
	l := newLedger(opts)

	genesisTx, err := NewTransaction(SystemAccount, GenesisAccount, 0, genesisMemo, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create genesis transaction: %w", err)
	}
	genesis := AssembleBlock([]Transaction{genesisTx}, genesisPreviousHash, time.Now())
	if err := l.mine(ctx, genesis); err != nil {
		return nil, fmt.Errorf("failed to mine genesis block: %w", err)
	}
	if err := l.record(ctx, genesisTx); err != nil {
		return nil, fmt.Errorf("failed to save genesis transaction: %w", err)
	}
	if err := l.persist(ctx, genesis); err != nil {
		return nil, err
	}
	if err := l.index.Apply(genesis); err != nil {
		return nil, err
	}
	l.chain = []*Block{genesis}

	l.log.Info("genesis block created",
		zap.String("hash", genesis.Hash),
		zap.Uint64("nonce", genesis.Nonce),
		zap.Int("difficulty", l.difficulty))
	return l, nil
}

// Restore rebuilds a ledger from persisted blocks, genesis first.
// The whole chain is verified; a broken chain is returned as a ChainIntegrityError.
func Restore(ctx context.Context, blocks []*Block, opts Options) (*Ledger, error) {
	if len(blocks) == 0 {
		return nil, errors.New("no blocks to restore")
	}

	l := newLedger(opts)
	if err := verifyChain(blocks, l.difficulty); err != nil {
		return nil, err
	}
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.index.Apply(block); err != nil {
			return nil, &ChainIntegrityError{Index: len(l.chain), Reason: err.Error()}
		}
		l.chain = append(l.chain, block)
	}

	l.log.Info("chain restored",
		zap.Int("blocks", len(l.chain)),
		zap.String("tip", l.chain[len(l.chain)-1].Hash))
	return l, nil
}

// Open restores the chain held by src and queues again every stored transaction
// that never made it into a block. An empty source gets a new genesis block.
func Open(ctx context.Context, src Source, opts Options) (*Ledger, error) {
	blocks, err := src.LoadBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	if len(blocks) == 0 {
		return New(ctx, opts)
	}
	l, err := Restore(ctx, blocks, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to restore chain from %d blocks: %w", len(blocks), err)
	}

	stored, err := src.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if _, err := l.Requeue(stored); err != nil {
		return nil, err
	}
	return l, nil
}

// Requeue queues the transactions of stored that are neither on the chain nor pending,
// keeping their order. Transactions whose hash does not match their contents are skipped.
// It returns how many were queued.
func (l *Ledger) Requeue(stored []Transaction) (int, error) {
	known := make(map[string]struct{})
	for _, block := range l.Blocks() {
		for _, tx := range block.Transactions {
			known[tx.ID] = struct{}{}
		}
	}
	for _, tx := range l.Pending() {
		known[tx.ID] = struct{}{}
	}

	queued := 0
	for _, tx := range stored {
		if _, ok := known[tx.ID]; ok {
			continue
		}
		if !tx.VerifyHash() {
			l.log.Warn("skipping stored transaction with bad hash", zap.String("txn_id", tx.ID))
			continue
		}
		if err := l.Enqueue(tx); err != nil {
			return queued, fmt.Errorf("failed to queue transaction %s: %w", tx.ID, err)
		}
		known[tx.ID] = struct{}{}
		queued++
	}

	if queued > 0 {
		l.log.Info("unmined transactions queued again", zap.Int("transactions", queued))
	}
	return queued, nil
}

// Enqueue appends tx to the pending queue.
// Balance sufficiency is the caller's concern and is not checked here.
func (l *Ledger) Enqueue(tx Transaction) error {
	if err := l.failed(); err != nil {
		return err
	}
	if tx.Sender == "" || tx.Receiver == "" || tx.Hash == "" || tx.Amount < 0 {
		return ErrIncompleteTransaction
	}

	l.queueMu.Lock()
	l.pending = append(l.pending, tx)
	l.queueMu.Unlock()
	return nil
}

// Commit mines the pending queue into a new block at the chain tip.
// It returns nil, nil when there is nothing to mine. On any failure the queue
// and the balance index are left as they were.
// With grantReward a reward for miner is queued for the next commit.
func (l *Ledger) Commit(ctx context.Context, miner string, grantReward bool) (*Block, error) {
	l.commitMu.Lock()
	defer l.commitMu.Unlock()

	if err := l.failed(); err != nil {
		return nil, err
	}

	l.queueMu.Lock()
	batch := slices.Clone(l.pending)
	l.queueMu.Unlock()

	if len(batch) == 0 {
		l.log.Debug("no transactions to mine")
		return nil, nil
	}

	tip := l.Tip()
	block := AssembleBlock(batch, tip.Hash, time.Now())
	if err := l.mine(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to mine block: %w", err)
	}

	if err := l.checkLink(tip, block, l.Len()); err != nil {
		l.halt(err)
		return nil, err
	}
	staged, err := l.index.stage(block)
	if err != nil {
		return nil, fmt.Errorf("failed to stage balances: %w", err)
	}

	if err := l.persist(ctx, block); err != nil {
		return nil, err
	}

	l.chainMu.Lock()
	l.chain = append(l.chain, block)
	l.index.merge(staged)
	height := len(l.chain)
	l.chainMu.Unlock()

	// only this commit removes from the queue, so the snapshot is still its prefix
	l.queueMu.Lock()
	l.pending = slices.Delete(l.pending, 0, len(batch))
	l.queueMu.Unlock()

	l.log.Info("block mined",
		zap.Int("height", height),
		zap.String("hash", block.Hash),
		zap.Uint64("nonce", block.Nonce),
		zap.Int("transactions", len(block.Transactions)))

	if grantReward {
		reward, err := NewTransaction(SystemAccount, miner, l.reward, rewardMemo, nil)
		if err != nil {
			return block, fmt.Errorf("failed to create reward transaction: %w", err)
		}
		if err := l.record(ctx, reward); err != nil {
			return block, fmt.Errorf("failed to save reward transaction: %w", err)
		}
		if err := l.Enqueue(reward); err != nil {
			return block, fmt.Errorf("failed to queue reward transaction: %w", err)
		}
	}

	return block, nil
}

// BalanceOf returns the running balance of account
func (l *Ledger) BalanceOf(account string) int64 {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return l.index.Balance(account)
}

// Balances returns a copy of every balance on the chain
func (l *Ledger) Balances() map[string]int64 {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return l.index.Snapshot()
}

// HistoryOf yields every transaction sent or received by account, oldest first.
// Each iteration scans the chain as it stood when HistoryOf was called.
func (l *Ledger) HistoryOf(account string) iter.Seq[Transaction] {
	blocks := l.Blocks()
	return func(yield func(Transaction) bool) {
		for _, block := range blocks {
			for _, tx := range block.Transactions {
				if tx.Involves(account) && !yield(tx) {
					return
				}
			}
		}
	}
}

// Blocks returns the chain, genesis first. The blocks must not be modified.
func (l *Ledger) Blocks() []*Block {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return slices.Clone(l.chain)
}

// Len returns the number of blocks including genesis
func (l *Ledger) Len() int {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return len(l.chain)
}

// Tip returns the most recently appended block
func (l *Ledger) Tip() *Block {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return l.chain[len(l.chain)-1]
}

// Pending returns a copy of the transactions waiting for the next block
func (l *Ledger) Pending() []Transaction {
	l.queueMu.Lock()
	defer l.queueMu.Unlock()
	return slices.Clone(l.pending)
}

// Difficulty returns the chain-wide difficulty
func (l *Ledger) Difficulty() int {
	return l.difficulty
}

// Verify re-checks every link, hash and transaction hash on the chain
func (l *Ledger) Verify() error {
	return verifyChain(l.Blocks(), l.difficulty)
}

func (l *Ledger) mine(ctx context.Context, block *Block) error {
	if l.mineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.mineTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := block.Mine(ctx, l.difficulty); err != nil {
		l.log.Warn("mining aborted",
			zap.Int("difficulty", l.difficulty),
			zap.Uint64("nonce", block.Nonce),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return err
	}
	return nil
}

func (l *Ledger) persist(ctx context.Context, block *Block) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveBlock(ctx, block); err != nil {
		return fmt.Errorf("failed to save block: %w", err)
	}
	return nil
}

func (l *Ledger) record(ctx context.Context, tx Transaction) error {
	if l.txs == nil {
		return nil
	}
	return l.txs.SaveTransaction(ctx, tx)
}

func (l *Ledger) checkLink(prev, block *Block, index int) error {
	if block.PreviousHash != prev.Hash {
		return &ChainIntegrityError{Index: index, Reason: "previous hash does not match"}
	}
	if !block.Valid(l.difficulty) {
		return &ChainIntegrityError{Index: index, Reason: "hash does not meet difficulty"}
	}
	return nil
}

func (l *Ledger) halt(err error) {
	l.chainMu.Lock()
	l.broken = err
	l.chainMu.Unlock()
	l.log.Error("ledger halted", zap.Error(err))
}

func (l *Ledger) failed() error {
	l.chainMu.RLock()
	defer l.chainMu.RUnlock()
	return l.broken
}

func verifyChain(blocks []*Block, difficulty int) error {
	for i, block := range blocks {
		if i == 0 {
			if block.PreviousHash != genesisPreviousHash {
				return &ChainIntegrityError{Index: 0, Reason: "genesis previous hash is not " + genesisPreviousHash}
			}
		} else if block.PreviousHash != blocks[i-1].Hash {
			return &ChainIntegrityError{Index: i, Reason: "previous hash does not match"}
		}
		if block.Hash != block.CalculateHash() {
			return &ChainIntegrityError{Index: i, Reason: "stored hash does not match contents"}
		}
		if !HashMeetsDifficulty(block.Hash, difficulty) {
			return &ChainIntegrityError{Index: i, Reason: "hash does not meet difficulty"}
		}
		for _, tx := range block.Transactions {
			if tx.Amount < 0 {
				return &ChainIntegrityError{Index: i, Reason: "transaction " + tx.ID + " has a negative amount"}
			}
			if !tx.VerifyHash() {
				return &ChainIntegrityError{Index: i, Reason: "transaction " + tx.ID + " hash does not match"}
			}
		}
	}
	return nil
}
