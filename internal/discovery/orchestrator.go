package discovery

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Orchestrator issues retrievals and tracks the idle/loading/success/error
// state. Every request is tagged with a monotonically increasing sequence
// number; only the result of the latest request is ever applied. Superseded
// requests have their context cancelled.
type Orchestrator struct {
	retriever Retriever
	logger    *zap.Logger

	base       context.Context
	baseCancel context.CancelFunc

	mu      sync.Mutex
	seq     uint64
	state   State
	cancel  context.CancelFunc
	changed chan struct{}
	closed  bool

	wg sync.WaitGroup
}

// NewOrchestrator creates an idle orchestrator
func NewOrchestrator(retriever Retriever, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		retriever:  retriever,
		logger:     logger,
		base:       base,
		baseCancel: cancel,
		state:      State{Status: StatusIdle, Predicate: NewPredicate("", AllCategories)},
		changed:    make(chan struct{}),
	}
}

// Update issues a new retrieval for the given search text and category and
// returns its sequence number. The state moves to loading regardless of the
// current state.
func (o *Orchestrator) Update(search, category string) uint64 {
	pred := NewPredicate(search, category)
	q := pred.Query()

	o.mu.Lock()
	if o.closed {
		seq := o.seq
		o.mu.Unlock()
		return seq
	}
	if o.cancel != nil {
		o.cancel()
	}
	o.seq++
	seq := o.seq
	ctx, cancel := context.WithCancel(o.base)
	o.cancel = cancel
	o.setStateLocked(State{Status: StatusLoading, Seq: seq, Predicate: pred, Query: q})
	o.wg.Add(1)
	o.mu.Unlock()

	o.logger.Debug("Issuing recipe retrieval",
		zap.Uint64("seq", seq),
		zap.String("category", q.CategoryValue()),
		zap.String("search", q.SearchValue()))

	go o.run(ctx, cancel, seq, pred)
	return seq
}

func (o *Orchestrator) run(ctx context.Context, cancel context.CancelFunc, seq uint64, pred Predicate) {
	defer o.wg.Done()
	defer cancel()

	q := pred.Query()
	recipes, err := o.retriever.Retrieve(ctx, q)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || seq != o.seq {
		o.logger.Debug("Discarding stale retrieval result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", o.seq))
		return
	}
	o.cancel = nil

	if err != nil {
		rerr := AsRetrievalError(err)
		o.logger.Warn("Recipe retrieval failed", zap.Uint64("seq", seq), zap.Error(err))
		o.setStateLocked(State{Status: StatusError, Seq: seq, Predicate: pred, Query: q, Err: rerr})
		return
	}

	if recipes == nil {
		recipes = []types.RawRecipe{}
	}
	o.logger.Debug("Recipe retrieval succeeded", zap.Uint64("seq", seq), zap.Int("count", len(recipes)))
	o.setStateLocked(State{Status: StatusSuccess, Seq: seq, Predicate: pred, Query: q, Recipes: recipes})
}

// setStateLocked replaces the state and wakes every observer. o.mu must be held.
func (o *Orchestrator) setStateLocked(s State) {
	o.state = s
	close(o.changed)
	o.changed = make(chan struct{})
}

// Snapshot returns the current state. Recipes must be treated as read-only.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Changes returns a channel that is closed on the next state transition
func (o *Orchestrator) Changes() <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.changed
}

// Wait blocks until the retrieval numbered seq settles. It returns
// ErrSuperseded with the current state if a newer request was issued first.
func (o *Orchestrator) Wait(ctx context.Context, seq uint64) (State, error) {
	for {
		o.mu.Lock()
		st, latest, ch, closed := o.state, o.seq, o.changed, o.closed
		o.mu.Unlock()

		if latest > seq {
			return st, ErrSuperseded
		}
		if st.Seq == seq && st.Settled() {
			return st, nil
		}
		if closed {
			return st, context.Canceled
		}

		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close cancels any in-flight retrieval and waits for it to return
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.baseCancel()
	close(o.changed)
	o.changed = make(chan struct{})
	o.mu.Unlock()

	o.wg.Wait()
}
