package baseline

import "bcheck/common"

// adviceFor returns user-facing guidance for a classified usage. The mapping
// is keyed by feature id with explicit cases for features that have a known
// polyfill or replacement, so a gap shows up right here instead of as a
// silently missing string somewhere downstream.
func adviceFor(id string, tier common.Tier, target common.Target) string {
	switch tier {
	case common.TierLimited:
		if s, ok := limitedAdvice[id]; ok {
			return s
		}
		return "Limited availability across browsers. Consider a polyfill or wait for wider support."
	case common.TierNewlyAvailable:
		if target != common.TargetWidelyAvailable {
			return ""
		}
		if s, ok := newlyAdvice[id]; ok {
			return s
		}
		return "Newly available. Use behind a feature check as progressive enhancement."
	default:
		return ""
	}
}

// limitedAdvice holds replacement or mitigation texts for limited features.
var limitedAdvice = map[string]string{
	"view-transitions":   "Guard with 'if (document.startViewTransition)' and keep non-animated navigation as the fallback.",
	"anchor-positioning": "Use the @oddbird/css-anchor-positioning polyfill or absolute positioning fallbacks.",
	"scope":              "Scope styles with class prefixes or nested selectors until @scope is widely supported.",
	"shadow-piercing":    "Deprecated shadow-piercing combinator. Use CSS custom properties or ::part() to style shadow content.",
	"stretch-sizing":     "Use 'width: 100%' together with box-sizing, or the prefixed '-webkit-fill-available', until stretch is widely supported.",
}

// newlyAdvice refines the generic progressive-enhancement message for
// features with an established fallback pattern.
var newlyAdvice = map[string]string{
	"container-queries": "Wrap rules in '@supports (container-type: inline-size)' and keep viewport-based styles as the base.",
	"cascade-layers":    "Order-based specificity keeps working without @layer; declare layers only as an additive refinement.",
	"has":               "Duplicate the affected styles with an explicit class toggled from script where :has() is unavailable.",
	"nesting":           "Author nested rules through a preprocessor until native nesting is widely available.",
	"subgrid":           "Fall back to an explicit track definition on the nested grid.",
	"array-by-copy":     "core-js ships to-sorted/to-reversed/to-spliced polyfills.",
	"web-share":         "Feature-check 'navigator.share' and fall back to copy-to-clipboard UI.",
	"async-clipboard":   "Feature-check 'navigator.clipboard' and fall back to execCommand or manual copy UI.",
	"popover":           "The @oddbird/popover-polyfill covers the popover attribute and API.",
}
