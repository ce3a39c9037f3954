// Package common keeps enumerations shared between configuration and the
// analysis engine, so neither has to import the other.
package common

// Baseline compatibility tier of a web-platform feature. TierUnknown marks
// tokens the registry could not resolve, matched features always carry one of
// the other three values. Order matters: higher value means wider support.
// ENUM(unknown, limited, newly-available, widely-available)
type Tier int

// Known reports whether the tier came from an actual dataset record.
func (t Tier) Known() bool {
	return t != TierUnknown
}

// Points returns the contribution of a single usage with this tier to the
// overall compatibility score.
func (t Tier) Points() int {
	switch t {
	case TierWidelyAvailable:
		return 100
	case TierNewlyAvailable:
		return 75
	case TierLimited:
		return 25
	default:
		return 50
	}
}

// Minimal acceptable tier for a run.
// ENUM(widely-available, newly-available, limited)
type Target int

// MinTier returns the lowest tier this target accepts.
func (t Target) MinTier() Tier {
	switch t {
	case TargetWidelyAvailable:
		return TierWidelyAvailable
	case TargetNewlyAvailable:
		return TierNewlyAvailable
	default:
		return TierLimited
	}
}

// Accepts reports whether a feature of the given tier satisfies the target.
// Acceptance is monotonic: anything a stricter target accepts, a looser one
// accepts too. Unknown tiers never satisfy any target.
func (t Target) Accepts(tier Tier) bool {
	return tier.Known() && tier >= t.MinTier()
}

// Classification of a single reported usage.
// ENUM(info, warning, error)
type Severity int

// Specification of requested report format.
// ENUM(console, json, junit)
type OutputFmt int

// Ext returns conventional file extension for the report format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtJunit:
		return ".xml"
	default:
		return ".txt"
	}
}

// Specification of the script extractor implementation.
// ENUM(lines, lexer)
type ScriptParser int
