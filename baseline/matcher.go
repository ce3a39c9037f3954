package baseline

import (
	"strings"
	"unicode"

	"bcheck/common"
)

// Assessment is the answer to a point query: the resolved feature (if any),
// its tier, the projected browser support and whether it satisfies the
// requested target. Absence is represented, never raised: an unmatched token
// yields TierUnknown, an empty support map and MeetsTarget false.
type Assessment struct {
	Token       string
	FeatureID   string
	Name        string
	Tier        common.Tier
	Support     map[string]string
	MeetsTarget bool
	Advice      string
}

// Matched reports whether the token resolved to a dataset record.
func (a Assessment) Matched() bool {
	return a.Tier.Known()
}

// Leading dash is trimmed before the prefix check, so these cover both
// "-webkit-transform" and the camelCase "WebkitTransform" form.
var vendorPrefixes = []string{"webkit-", "moz-", "ms-", "o-"}

// CheckFeature resolves an arbitrary source token to a feature record and
// classifies it against the target tier. Lookup ladder, first match wins:
//
//  1. exact index key;
//  2. lowercased index key;
//  3. CSS variation: vendor prefix stripped and camelCase converted to
//     kebab-case, then the bare name, "css-<name>" and
//     "css.properties.<name>" forms, in that order;
//  4. substring fallback: the first sorted index key containing the token,
//     then the first sorted display name containing it. The sorted slices
//     are fixed at construction, so the answer never depends on map order.
//
// The configured exceptions list never reaches this method - it only gates
// severity downstream.
func (r *Registry) CheckFeature(token string, target common.Target) Assessment {
	return r.check(token, target, true)
}

// CheckFeatureStrict is CheckFeature without the substring fallback. The
// extractors probe the registry with every property and identifier they see,
// where fuzzy matching would turn ordinary tokens like "color" into noise;
// interactive point queries keep the full ladder.
func (r *Registry) CheckFeatureStrict(token string, target common.Target) Assessment {
	return r.check(token, target, false)
}

func (r *Registry) check(token string, target common.Target, fuzzy bool) Assessment {
	token = strings.TrimSpace(token)
	if rec := r.resolve(token, fuzzy); rec != nil {
		return r.assess(token, rec, target)
	}
	return Assessment{
		Token:   token,
		Tier:    common.TierUnknown,
		Support: map[string]string{},
		Advice:  "not found",
	}
}

func (r *Registry) resolve(token string, fuzzy bool) *Record {
	if len(token) == 0 {
		return nil
	}
	if rec, ok := r.index[token]; ok {
		return rec
	}
	lower := strings.ToLower(token)
	if rec, ok := r.index[lower]; ok {
		return rec
	}

	// CSS variation: kebab first, it folds camelCase before the vendor
	// prefix check ("WebkitTransform" becomes "webkit-transform").
	name := stripVendorPrefix(strings.TrimPrefix(kebab(token), "-"))
	for _, form := range []string{name, "css-" + name, "css.properties." + name} {
		if rec, ok := r.index[form]; ok {
			return rec
		}
	}

	// Fuzzy fallback. Very short tokens are too promiscuous as substrings,
	// they either matched exactly above or stay unresolved.
	if !fuzzy || len(lower) < 4 {
		return nil
	}
	for _, key := range r.sortedKeys {
		if strings.Contains(key, lower) {
			return r.index[key]
		}
	}
	for _, n := range r.sortedNames {
		if strings.Contains(n, lower) {
			return r.byName[n]
		}
	}
	return nil
}

func (r *Registry) assess(token string, rec *Record, target common.Target) Assessment {
	support := make(map[string]string, len(rec.Support))
	for b, v := range rec.Support {
		support[b] = v
	}
	meets := target.Accepts(rec.Tier)
	return Assessment{
		Token:       token,
		FeatureID:   rec.ID,
		Name:        rec.Name,
		Tier:        rec.Tier,
		Support:     support,
		MeetsTarget: meets,
		Advice:      adviceFor(rec.ID, rec.Tier, target),
	}
}

func stripVendorPrefix(s string) string {
	for _, p := range vendorPrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest
		}
	}
	return s
}

// kebab converts camelCase tokens to kebab-case, leaving already-kebab input
// untouched.
func kebab(s string) string {
	if strings.ToLower(s) == s {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
