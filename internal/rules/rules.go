// Package rules exposes marketplace configuration rules to request gates.
package rules

import (
	"context"
	"fmt"
	"slices"
)

// Rule names a marketplace configuration switch.
type Rule string

const (
	GlobalProductCatalog   Rule = "global_product_catalog"
	RequireProductApproval Rule = "require_product_approval"
	ProductRequestEnabled  Rule = "product_request_enabled"
	ProductImportEnabled   Rule = "product_import_enabled"
)

// Known lists every rule in a stable order.
var Known = []Rule{
	GlobalProductCatalog,
	RequireProductApproval,
	ProductRequestEnabled,
	ProductImportEnabled,
}

// Defaults are the values used when neither configuration nor storage sets a rule.
func Defaults() Snapshot {
	return Snapshot{
		GlobalProductCatalog:   false,
		RequireProductApproval: false,
		ProductRequestEnabled:  true,
		ProductImportEnabled:   true,
	}
}

// Parse validates a rule name.
func Parse(name string) (Rule, error) {
	r := Rule(name)
	if !slices.Contains(Known, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return r, nil
}

// Snapshot is a point-in-time view of every rule's value.
type Snapshot map[Rule]bool

// Enabled reports the rule's value. Rules missing from the snapshot fall back to Defaults.
func (s Snapshot) Enabled(r Rule) bool {
	if v, ok := s[r]; ok {
		return v
	}
	return Defaults()[r]
}

// Source provides rule snapshots. Implementations are safe for concurrent use.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Static is a Source that always returns the same values.
type Static Snapshot

func (s Static) Snapshot(context.Context) (Snapshot, error) {
	out := Defaults()
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}
