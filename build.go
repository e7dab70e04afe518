package subspace

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Node is one node of a caller-built binary partition tree over the
// columns of a point matrix. A node either has no children (a leaf owning
// columns [Start, Start+Count)) or exactly two children whose ranges tile
// its own, left first.
//
// Build fills in Stat; every other field is read-only to Build.
type Node struct {
	Start int
	Count int
	Left  *Node
	Right *Node
	Stat  *Stat
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Build computes the Stat of every node of the tree rooted at root, leaves
// with NewLeaf and internal nodes with Merge once both children are done.
//
// Sibling subtrees are built concurrently down to the depth configured with
// WithParallelDepth. The first failure cancels the remaining work and is
// returned; in that case some nodes may already hold their Stat. The tree
// must not have been built before.
func Build(ctx context.Context, points mat.Matrix, root *Node, optFns ...Option) error {
	o := applyOptions(optFns)

	_, n := points.Dims()
	if err := validateTree(root, n); err != nil {
		o.logger.LogBuild(ctx, 0, 0, err)
		return err
	}

	b := &builder{
		points: points,
		opts:   &o,
	}
	err := b.build(ctx, root, 0)

	rank := 0
	if err == nil {
		rank = root.Stat.Rank()
	}
	o.logger.LogBuild(ctx, int(b.nodes.Load()), rank, err)

	return err
}

type builder struct {
	points mat.Matrix
	opts   *options
	nodes  atomic.Int64
}

func (b *builder) build(ctx context.Context, n *Node, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if n.IsLeaf() {
		s, err := newLeaf(ctx, b.points, n.Start, n.Count, b.opts)
		if err != nil {
			return fmt.Errorf("leaf [%d,%d): %w", n.Start, n.Start+n.Count, err)
		}
		n.Stat = s
		b.nodes.Add(1)
		return nil
	}

	if depth < b.opts.parallelDepth {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return b.build(gctx, n.Left, depth+1) })
		g.Go(func() error { return b.build(gctx, n.Right, depth+1) })
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		if err := b.build(ctx, n.Left, depth+1); err != nil {
			return err
		}
		if err := b.build(ctx, n.Right, depth+1); err != nil {
			return err
		}
	}

	s, err := merge(ctx, n.Left.Stat, n.Right.Stat, b.opts)
	if err != nil {
		return fmt.Errorf("merge [%d,%d): %w", n.Start, n.Start+n.Count, err)
	}
	n.Stat = s
	b.nodes.Add(1)
	return nil
}

// validateTree checks the structural preconditions of Build before any
// decomposition runs.
func validateTree(n *Node, columns int) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidTree)
	}
	if n.Stat != nil {
		return fmt.Errorf("%w: node [%d,%d) already built", ErrInvalidTree, n.Start, n.Start+n.Count)
	}
	if n.Count < 1 {
		return fmt.Errorf("%w: node at %d: %w", ErrInvalidTree, n.Start, ErrEmptyRange)
	}
	if n.Start < 0 || n.Start+n.Count > columns {
		return fmt.Errorf("%w: node [%d,%d): %w", ErrInvalidTree, n.Start, n.Start+n.Count, ErrRangeOutOfBounds)
	}
	if n.IsLeaf() {
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return fmt.Errorf("%w: node [%d,%d) has a single child", ErrInvalidTree, n.Start, n.Start+n.Count)
	}
	if n.Left.Start != n.Start ||
		n.Right.Start != n.Left.Start+n.Left.Count ||
		n.Left.Count+n.Right.Count != n.Count {
		return fmt.Errorf("%w: children of [%d,%d) do not tile it: %w",
			ErrInvalidTree, n.Start, n.Start+n.Count, ErrNotAdjacent)
	}

	if err := validateTree(n.Left, columns); err != nil {
		return err
	}
	return validateTree(n.Right, columns)
}
