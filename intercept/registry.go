package intercept

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/on-the-ground/memo_ive_go/internal/memo"
	"go.uber.org/zap"
)

// ComputeFunc produces the result of an operation for args.
type ComputeFunc func(ctx context.Context, args []any) (any, error)

// Registry holds one compute-once table per operation identity.
// Tables are created on first use and live as long as the Registry.
type Registry struct {
	id            uuid.UUID
	fingerprinter Fingerprinter
	logger        *zap.Logger
	operations    sync.Map // OperationID -> *memo.Table[string, any]
}

type Option func(*Registry)

// WithFingerprinter replaces the default CBOR TokenFingerprinter.
func WithFingerprinter(f Fingerprinter) Option {
	return func(r *Registry) {
		if f != nil {
			r.fingerprinter = f
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		id:            uuid.New(),
		fingerprinter: NewTokenFingerprinter(CBOR()),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) ID() uuid.UUID {
	return r.id
}

// Resolve returns the cached result of op for args, running compute when there is none.
//
// Concurrent calls with the same op and fingerprint run compute once. compute
// receives a context detached from ctx's cancellation; ctx only bounds how
// long this caller waits for somebody else's computation.
// A failed computation is not cached and its failure reaches every caller
// that was waiting on it.
func (r *Registry) Resolve(ctx context.Context, op OperationID, args []any, compute ComputeFunc) (any, error) {
	if compute == nil {
		return nil, invalidArgument("nil compute for %q", op)
	}
	claim, err := r.Claim(op, args)
	if err != nil {
		return nil, err
	}
	return claim.Settle(ctx, args, compute)
}

// Claim finds the entry for op and args, installing an unresolved one when absent.
// The elected claimant must call Settle; it never blocks.
func (r *Registry) Claim(op OperationID, args []any) (*Claim, error) {
	if op == "" {
		return nil, invalidArgument("empty operation id")
	}
	if args == nil {
		return nil, invalidArgument("nil argument list for %q", op)
	}
	fp, err := r.fingerprinter.Fingerprint(args)
	if err != nil {
		if !errors.Is(err, ErrFingerprint) {
			err = fmt.Errorf("%w: %w", ErrFingerprint, err)
		}
		return nil, err
	}

	table := r.table(op)
	cell, elected := table.Claim(fp)
	return &Claim{
		registry:    r,
		op:          op,
		fingerprint: fp,
		table:       table,
		cell:        cell,
		elected:     elected,
	}, nil
}

// Len reports how many entries op holds, including in-flight ones.
func (r *Registry) Len(op OperationID) int {
	v, ok := r.operations.Load(op)
	if !ok {
		return 0
	}
	return v.(*memo.Table[string, any]).Len()
}

func (r *Registry) table(op OperationID) *memo.Table[string, any] {
	if v, ok := r.operations.Load(op); ok {
		return v.(*memo.Table[string, any])
	}
	v, _ := r.operations.LoadOrStore(op, memo.NewTable[string, any]())
	return v.(*memo.Table[string, any])
}

// Claim is one caller's stake in a registry entry.
type Claim struct {
	registry    *Registry
	op          OperationID
	fingerprint string
	table       *memo.Table[string, any]
	cell        *memo.Cell[any]
	elected     bool
	settled     atomic.Bool
}

// Elected reports whether this claim installed the entry and must compute it.
func (c *Claim) Elected() bool {
	return c.elected
}

func (c *Claim) Fingerprint() string {
	return c.fingerprint
}

// Settle computes the entry when the claim is elected, otherwise waits for it.
// Only the first Settle of an elected claim computes.
func (c *Claim) Settle(ctx context.Context, args []any, compute ComputeFunc) (any, error) {
	logger := c.registry.logger.With(
		zap.String("op", string(c.op)),
		zap.String("fingerprint", c.fingerprint),
		zap.Stringer("registry", c.registry.id),
	)

	if !c.elected || !c.settled.CompareAndSwap(false, true) {
		logger.Debug("waiting for memoized result")
		return c.cell.WaitContext(ctx)
	}

	logger.Debug("computing memoized result")
	v, err := c.cell.Run(func() (any, error) {
		if compute == nil {
			return nil, invalidArgument("nil compute for %q", c.op)
		}
		return compute(context.WithoutCancel(ctx), args)
	}, c.table.Discard(c.fingerprint, c.cell))
	if err != nil {
		logger.Debug("memoized computation failed", zap.Error(err))
	}
	return v, err
}
