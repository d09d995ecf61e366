// Package enrich prefills vendor metadata for newly recognized vendors from
// previously recorded orders.
package enrich

import (
	"strings"

	"pedidos-tracker/internal/entity"
)

// Options controls which historical rows may contribute knowledge.
type Options struct {
	// RequireLocation restricts the fold to rows that also carry a non-empty
	// vendor address. The batch flow historically used this stricter variant;
	// the interactive flow learns from any row with a vendor name.
	RequireLocation bool
}

// BuildVendorKnowledge folds historical orders in their storage order into a
// last-write-wins map from vendor name to remembered attributes. Iteration
// order is an invariant: a later row for the same vendor replaces the
// earlier one. The map is rebuilt from scratch on every call.
func BuildVendorKnowledge(history []entity.Order, opts Options) map[string]entity.VendorInfo {
	knowledge := make(map[string]entity.VendorInfo)
	for _, o := range history {
		name := strings.TrimSpace(o.VendorName)
		if name == "" {
			continue
		}
		if opts.RequireLocation && strings.TrimSpace(o.VendorAddress) == "" {
			continue
		}
		knowledge[name] = entity.VendorInfo{
			BusinessType: o.BusinessType,
			Chain:        o.Chain,
			PostalCode:   o.VendorPostalCode,
			Address:      o.VendorAddress,
		}
	}
	return knowledge
}

// LookupVendor rebuilds the knowledge map and returns the remembered
// attributes for name, or zero-value defaults when the vendor is unknown.
// Full rebuild per call is deliberate: this serves a per-form-render flow
// over a small history and carries no cache.
func LookupVendor(name string, history []entity.Order, opts Options) entity.VendorInfo {
	return BuildVendorKnowledge(history, opts)[strings.TrimSpace(name)]
}
