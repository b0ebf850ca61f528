// Package policy decides which account-to-account transfers are permitted
// based on the custody category (TradFi, CeFi, DeFi, Personal) and, for
// same-category DeFi hops, the network of both accounts.
package policy

import (
	"fmt"

	"fledger/internal/modules/ledger/model"
)

// Classification is the subset of account attributes the rules operate on.
type Classification struct {
	Category string
	Network  string
}

// rule describes the allowed destinations for one source category. A category
// absent from a rule's set is denied with the rule's reason.
type rule struct {
	anyDest     bool
	dests       map[string]bool
	sameNetwork bool // DeFi->DeFi only when networks match
}

// Decision table. New categories are added here and in the tests, not in
// engine code.
var rules = map[string]rule{
	model.CategoryTradFi: {
		dests: map[string]bool{model.CategoryTradFi: true, model.CategoryCeFi: true, model.CategoryPersonal: true},
	},
	// Exchange is the universal bridge.
	model.CategoryCeFi: {anyDest: true},
	model.CategoryDeFi: {
		dests:       map[string]bool{model.CategoryCeFi: true, model.CategoryDeFi: true},
		sameNetwork: true,
	},
	model.CategoryPersonal: {
		dests: map[string]bool{model.CategoryTradFi: true, model.CategoryPersonal: true},
	},
}

// Validate returns whether a transfer from src to dst is allowed. When it is
// not, the reason names the specific rule violated. Unknown or missing
// categories default to Personal.
func Validate(src, dst Classification) (bool, string) {
	srcCat := normalize(src.Category)
	dstCat := normalize(dst.Category)

	r := rules[srcCat]
	if r.anyDest {
		return true, ""
	}
	if !r.dests[dstCat] {
		return false, fmt.Sprintf("cannot transfer from %s (%s) directly to %s (%s), deposit to an exchange first",
			srcCat, src.Network, dstCat, dst.Network)
	}
	if r.sameNetwork && srcCat == model.CategoryDeFi && dstCat == model.CategoryDeFi && src.Network != dst.Network {
		return false, fmt.Sprintf("network mismatch: cannot send %s to %s, bridge or exchange required",
			src.Network, dst.Network)
	}
	return true, ""
}

func normalize(category string) string {
	switch category {
	case model.CategoryTradFi, model.CategoryCeFi, model.CategoryDeFi, model.CategoryPersonal:
		return category
	default:
		return model.CategoryPersonal
	}
}
