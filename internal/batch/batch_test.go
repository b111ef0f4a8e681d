package batch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Faultbox/eztree/pkg/tree"
)

func batchOptions() tree.Options {
	opts := tree.DefaultOptions()
	opts.Seed = 10
	opts.Branch.Levels = 2
	return opts
}

func TestRunMatchesSequential(t *testing.T) {
	opts := batchOptions()

	var seeds []int64
	got := map[int64]*tree.Tree{}
	err := Run(context.Background(), opts, 6, 3, nil, func(seed int64, tr *tree.Tree) error {
		seeds = append(seeds, seed)
		got[seed] = tr
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantSeeds := []int64{10, 11, 12, 13, 14, 15}
	if !reflect.DeepEqual(seeds, wantSeeds) {
		t.Fatalf("sink order = %v, want %v", seeds, wantSeeds)
	}

	for _, seed := range wantSeeds {
		o := opts
		o.Seed = seed
		if !reflect.DeepEqual(got[seed], tree.Generate(o)) {
			t.Errorf("seed %d differs from sequential generation", seed)
		}
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	errDisk := errors.New("disk full")

	calls := 0
	err := Run(context.Background(), batchOptions(), 8, 2, nil, func(seed int64, _ *tree.Tree) error {
		calls++
		if seed == 12 {
			return errDisk
		}
		return nil
	})

	if !errors.Is(err, errDisk) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected sink to stop after 3 calls, got %d", calls)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, batchOptions(), 4, 1, nil, func(int64, *tree.Tree) error {
		t.Error("sink called after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunNothing(t *testing.T) {
	err := Run(context.Background(), batchOptions(), 0, 0, nil, func(int64, *tree.Tree) error {
		t.Error("sink called for empty batch")
		return nil
	})
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
