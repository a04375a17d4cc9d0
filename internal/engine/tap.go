package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrboora04/focuspoint/internal/types"
)

const DefaultTapTarget = 100

func (s *Service) CreateTapTarget(ctx context.Context, title string, target int) (*types.TapTarget, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if target == 0 {
		target = DefaultTapTarget
	}
	if target < 0 {
		return nil, ValidationError{Field: "target", Reason: "tap target must be positive"}
	}
	tap := types.TapTarget{ID: uuid.NewString(), Title: t, Target: target}
	if err := s.store.SaveTapTarget(ctx, &tap); err != nil {
		return nil, fmt.Errorf("save tap target: %w", err)
	}
	return &tap, nil
}

// RecordTaps adds taps to a counter, capped at its target, and accumulates
// the time spent tapping.
func (s *Service) RecordTaps(ctx context.Context, ref string, taps int, spent time.Duration) (*types.TapTarget, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ValidationError{Field: "tap", Reason: "tap target id or title is required"}
	}
	if taps < 0 {
		return nil, ValidationError{Field: "taps", Reason: "tap count cannot be negative"}
	}
	all, err := s.store.ListTapTargets(ctx)
	if err != nil {
		return nil, err
	}
	var tap *types.TapTarget
	for i := range all {
		if all[i].ID == ref || strings.HasPrefix(all[i].ID, ref) || strings.EqualFold(all[i].Title, ref) {
			tap = &all[i]
			break
		}
	}
	if tap == nil {
		return nil, fmt.Errorf("%w: %s", ErrTapNotFound, ref)
	}

	tap.Count += taps
	if tap.Count > tap.Target {
		tap.Count = tap.Target
	}
	if spent > 0 {
		tap.TotalTime += spent
	}
	if err := s.store.SaveTapTarget(ctx, tap); err != nil {
		return nil, fmt.Errorf("save tap target: %w", err)
	}
	return tap, nil
}

func (s *Service) TapTargets(ctx context.Context) ([]types.TapTarget, error) {
	all, err := s.store.ListTapTargets(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}
