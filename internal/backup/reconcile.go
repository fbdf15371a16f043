package backup

import (
	"fmt"

	"github.com/dmitrijs2005/studyos/internal/common"
)

// Reconcile applies a bundle to the current state and returns the resulting
// state. The inputs are not mutated.
//
// Overwrite replaces every module the bundle covers wholesale; with a full
// bundle, modules absent from the bundle are reset to an empty value of their
// current shape. Merge appends only array items whose identity key (the
// item's "id" field, or "ts" when there is no id) is not already present;
// non-array modules and items carrying neither key are skipped silently.
func Reconcile(current State, b *Bundle, strategy Strategy) (State, error) {
	if b == nil || b.Metadata == nil || b.Data == nil {
		return nil, fmt.Errorf("%w: bundle not parsed", common.ErrInvalidBundle)
	}

	result := make(State, len(current))
	for k, v := range current {
		result[k] = v
	}

	switch strategy {
	case StrategyOverwrite:
		reconcileOverwrite(result, b)
	case StrategyMerge:
		reconcileMerge(result, b)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	return result, nil
}

func reconcileOverwrite(result State, b *Bundle) {
	if b.Metadata.Type == ScopeFull {
		// a full bundle is authoritative for every module, including ones it
		// does not carry
		for m := range result {
			if _, ok := b.Data[m]; !ok {
				result[m] = emptyLike(result[m])
			}
		}
	}

	for m, v := range b.Data {
		result[m] = v
	}
}

func reconcileMerge(result State, b *Bundle) {
	for m, v := range b.Data {
		incoming, ok := v.([]any)
		if !ok {
			// merge is only defined for array-shaped modules
			continue
		}

		var existing []any
		switch cur := result[m].(type) {
		case nil:
			existing = []any{}
		case []any:
			existing = cur
		default:
			continue
		}

		seen := make(map[string]struct{}, len(existing))
		for _, item := range existing {
			if key, ok := identityKey(item); ok {
				seen[key] = struct{}{}
			}
		}

		merged := make([]any, len(existing), len(existing)+len(incoming))
		copy(merged, existing)

		for _, item := range incoming {
			key, ok := identityKey(item)
			if !ok {
				// without an identity key a re-import would duplicate the item
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}

		result[m] = merged
	}
}

// identityKey extracts the merge identity of an item: its "id" field when
// present, otherwise its "ts" field.
func identityKey(item any) (string, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return "", false
	}
	if v, ok := obj["id"]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	if v, ok := obj["ts"]; ok && v != nil {
		return fmt.Sprint(v), true
	}
	return "", false
}

// emptyLike returns the zero collection matching the shape of v.
func emptyLike(v any) any {
	switch v.(type) {
	case []any:
		return []any{}
	case map[string]any:
		return map[string]any{}
	default:
		return nil
	}
}
