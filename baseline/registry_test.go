package baseline

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"bcheck/common"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func TestNewRegistry(t *testing.T) {
	reg := testRegistry(t)

	if reg.Len() == 0 {
		t.Fatal("Registry has no features")
	}

	rec, ok := reg.Record("flexbox")
	if !ok {
		t.Fatal("Expected flexbox record to exist")
	}
	if rec.Tier != common.TierWidelyAvailable {
		t.Errorf("flexbox tier = %v, want widely-available", rec.Tier)
	}
	if len(rec.Support) == 0 {
		t.Error("flexbox record has no support data")
	}
}

func TestRegistry_SupportProjection(t *testing.T) {
	reg := testRegistry(t)

	for _, rec := range reg.records {
		for browser := range rec.Support {
			known := false
			for _, b := range Browsers {
				if browser == b {
					known = true
					break
				}
			}
			if !known {
				t.Errorf("Feature %s carries support for untracked browser %q", rec.ID, browser)
			}
		}
	}
}

func TestRegistry_IndexLookups(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		token string
		want  string
	}{
		{"flexbox", "flexbox"},
		{"flex", "flexbox"},
		{"css-grid", "grid"},
		{"=>", "arrow-functions"},
		{"?.", "optional-chaining"},
		{"@media", "media-queries"},
		{"transform", "transforms2d"},
		{"grid-template-columns", "grid"},
		{"raf", "request-animation-frame"},
		{"cqw-unit", "container-queries"},
		{"localstorage", "storage"},
		{"deep-combinator", "shadow-piercing"},
		{"position-sticky", "sticky-positioning"},
		{"initial", "global-keywords"},
		{"stretch", "stretch-sizing"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			a := reg.CheckFeature(tt.token, common.TargetWidelyAvailable)
			if !a.Matched() {
				t.Fatalf("CheckFeature(%q) did not match", tt.token)
			}
			if a.FeatureID != tt.want {
				t.Errorf("CheckFeature(%q) = %s, want %s", tt.token, a.FeatureID, tt.want)
			}
		})
	}
}

func TestRegistry_FirstWinsOnCollisions(t *testing.T) {
	reg := testRegistry(t)

	// Whatever key collisions exist, construction must be deterministic:
	// building twice resolves every key identically.
	again := testRegistry(t)
	for key, rec := range reg.index {
		other, ok := again.index[key]
		if !ok {
			t.Fatalf("Key %q missing from second registry", key)
		}
		if other.ID != rec.ID {
			t.Errorf("Key %q resolves to %s and %s across builds", key, rec.ID, other.ID)
		}
	}
}

func TestRegistry_AdviceForLimitedFeatures(t *testing.T) {
	reg := testRegistry(t)

	for _, rec := range reg.records {
		if rec.Tier != common.TierLimited {
			continue
		}
		a := reg.CheckFeature(rec.ID, common.TargetWidelyAvailable)
		if len(a.Advice) == 0 {
			t.Errorf("Limited feature %s has no advice", rec.ID)
		}
	}
}
