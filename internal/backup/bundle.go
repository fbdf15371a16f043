// Package backup implements export/import of application state: the bundle
// envelope, its validation, and the overwrite/merge reconciliation of a
// bundle against current state.
package backup

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/go-playground/validator/v10"
)

// Scope says whether a bundle carries every module or a chosen subset.
type Scope string

const (
	ScopeFull    Scope = "full"
	ScopePartial Scope = "partial"
)

// Strategy selects how a bundle is reconciled against current state.
type Strategy string

const (
	StrategyOverwrite Strategy = "overwrite"
	StrategyMerge     Strategy = "merge"
)

// State is the in-memory representation of all top-level data collections,
// keyed by module name. Values are decoded JSON: arrays ([]any) for
// collection modules, objects (map[string]any) otherwise.
type State map[string]any

// Metadata describes a bundle's origin and coverage.
type Metadata struct {
	Version   int      `json:"version" validate:"required"`
	Timestamp string   `json:"timestamp"`
	Type      Scope    `json:"type" validate:"required,oneof=full partial"`
	Modules   []string `json:"modules"`
}

// Bundle is the import/export envelope. Data presence is checked by hand in
// ParseBundle: an empty-but-present data object is a valid bundle, which a
// required tag would reject.
type Bundle struct {
	Metadata *Metadata `json:"metadata" validate:"required"`
	Data     State     `json:"data"`
}

// BundleVersion is written into exported bundles.
const BundleVersion = 1

var validate = validator.New()

// ParseBundle decodes and validates a bundle. A payload missing either
// top-level key, or carrying malformed metadata, is rejected with
// common.ErrInvalidBundle before any reconciliation can start.
func ParseBundle(raw []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBundle, err)
	}

	if b.Metadata == nil {
		return nil, fmt.Errorf("%w: missing metadata", common.ErrInvalidBundle)
	}
	if b.Data == nil {
		return nil, fmt.Errorf("%w: missing data", common.ErrInvalidBundle)
	}

	if err := validate.Struct(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBundle, err)
	}

	return &b, nil
}

// NewBundle wraps a state (or a subset of its modules) in an export envelope.
// A nil modules list exports everything as a full bundle.
func NewBundle(state State, modules []string, now time.Time) *Bundle {
	scope := ScopeFull
	data := State{}

	if modules == nil {
		for k, v := range state {
			data[k] = v
		}
	} else {
		scope = ScopePartial
		for _, m := range modules {
			if v, ok := state[m]; ok {
				data[m] = v
			}
		}
	}

	names := make([]string, 0, len(data))
	for k := range data {
		names = append(names, k)
	}
	sort.Strings(names)

	return &Bundle{
		Metadata: &Metadata{
			Version:   BundleVersion,
			Timestamp: now.UTC().Format(time.RFC3339),
			Type:      scope,
			Modules:   names,
		},
		Data: data,
	}
}
