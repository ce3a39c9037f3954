package baseline

import (
	"testing"

	"bcheck/common"
)

func TestCheckFeature_Unmatched(t *testing.T) {
	reg := testRegistry(t)

	for _, token := range []string{"", "zz", "no-such-feature-anywhere", "display"} {
		a := reg.CheckFeature(token, common.TargetWidelyAvailable)
		if a.Matched() {
			t.Errorf("CheckFeature(%q) matched %s, want no match", token, a.FeatureID)
		}
		if a.Tier != common.TierUnknown {
			t.Errorf("CheckFeature(%q) tier = %v, want unknown", token, a.Tier)
		}
		if a.MeetsTarget {
			t.Errorf("CheckFeature(%q) meets target, unmatched tokens never do", token)
		}
		if a.Support == nil || len(a.Support) != 0 {
			t.Errorf("CheckFeature(%q) support = %v, want empty map", token, a.Support)
		}
	}
}

func TestCheckFeature_VendorPrefixEquivalence(t *testing.T) {
	reg := testRegistry(t)

	plain := reg.CheckFeature("transform", common.TargetWidelyAvailable)
	for _, token := range []string{"-webkit-transform", "-moz-transform", "-ms-transform", "-o-transform"} {
		prefixed := reg.CheckFeature(token, common.TargetWidelyAvailable)
		if !prefixed.Matched() {
			t.Fatalf("CheckFeature(%q) did not match", token)
		}
		if prefixed.FeatureID != plain.FeatureID {
			t.Errorf("CheckFeature(%q) = %s, want %s", token, prefixed.FeatureID, plain.FeatureID)
		}
		if prefixed.Tier != plain.Tier {
			t.Errorf("CheckFeature(%q) tier = %v, want %v", token, prefixed.Tier, plain.Tier)
		}
	}
}

func TestCheckFeature_CamelCase(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		token string
		want  string
	}{
		{"backdropFilter", "backdrop-filter"},
		{"aspectRatio", "aspect-ratio"},
		{"scrollBehavior", "scroll-behavior"},
		{"WebkitBackdropFilter", "backdrop-filter"},
	}
	for _, tt := range tests {
		a := reg.CheckFeature(tt.token, common.TargetWidelyAvailable)
		if !a.Matched() || a.FeatureID != tt.want {
			t.Errorf("CheckFeature(%q) = %q (matched %t), want %s", tt.token, a.FeatureID, a.Matched(), tt.want)
		}
	}
}

func TestCheckFeature_SubstringFallback(t *testing.T) {
	reg := testRegistry(t)

	// Tokens shorter than four characters never reach the fallback.
	if a := reg.CheckFeature("has", common.TargetWidelyAvailable); !a.Matched() {
		// ":has" is indexed directly, bare "has" resolves through the key
		t.Errorf("CheckFeature(has) should match through the index, got no match")
	}
	if a := reg.CheckFeature("ani", common.TargetWidelyAvailable); a.Matched() {
		t.Errorf("CheckFeature(ani) matched %s, short tokens must not fall back", a.FeatureID)
	}

	// A longer fragment resolves through the fallback deterministically.
	first := reg.CheckFeature("intersection", common.TargetWidelyAvailable)
	if !first.Matched() || first.FeatureID != "intersection-observer" {
		t.Errorf("CheckFeature(intersection) = %q, want intersection-observer", first.FeatureID)
	}
	for i := 0; i < 10; i++ {
		if again := reg.CheckFeature("intersection", common.TargetWidelyAvailable); again.FeatureID != first.FeatureID {
			t.Fatalf("Fallback resolution is unstable: %s vs %s", first.FeatureID, again.FeatureID)
		}
	}
}

func TestCheckFeatureStrict_NoFallback(t *testing.T) {
	reg := testRegistry(t)

	if a := reg.CheckFeatureStrict("intersection", common.TargetWidelyAvailable); a.Matched() {
		t.Errorf("CheckFeatureStrict(intersection) matched %s, strict lookup must not fall back", a.FeatureID)
	}
	// Exact and variation stages still work.
	if a := reg.CheckFeatureStrict("-webkit-transform", common.TargetWidelyAvailable); !a.Matched() {
		t.Error("CheckFeatureStrict(-webkit-transform) should match through the CSS variation stage")
	}
}

func TestCheckFeature_TargetMonotonicity(t *testing.T) {
	reg := testRegistry(t)

	// Anything a stricter target accepts, every looser target accepts too.
	order := []common.Target{common.TargetWidelyAvailable, common.TargetNewlyAvailable, common.TargetLimited}
	for _, rec := range reg.records {
		prev := false
		for _, target := range order {
			cur := reg.CheckFeature(rec.ID, target).MeetsTarget
			if prev && !cur {
				t.Errorf("Feature %s accepted by stricter target but rejected by %v", rec.ID, target)
			}
			prev = cur
		}
	}
}

func TestCheckFeature_TierClassification(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		token string
		tier  common.Tier
		meets bool
	}{
		{"flexbox", common.TierWidelyAvailable, true},
		{"container-queries", common.TierNewlyAvailable, false},
		{"view-transitions", common.TierLimited, false},
	}
	for _, tt := range tests {
		a := reg.CheckFeature(tt.token, common.TargetWidelyAvailable)
		if a.Tier != tt.tier {
			t.Errorf("CheckFeature(%q) tier = %v, want %v", tt.token, a.Tier, tt.tier)
		}
		if a.MeetsTarget != tt.meets {
			t.Errorf("CheckFeature(%q) meets = %t, want %t", tt.token, a.MeetsTarget, tt.meets)
		}
	}

	a := reg.CheckFeature("container-queries", common.TargetNewlyAvailable)
	if !a.MeetsTarget {
		t.Error("container-queries should satisfy the newly-available target")
	}
}

func TestCheckFeature_SupportIsACopy(t *testing.T) {
	reg := testRegistry(t)

	a := reg.CheckFeature("flexbox", common.TargetWidelyAvailable)
	a.Support["chrome"] = "tampered"

	b := reg.CheckFeature("flexbox", common.TargetWidelyAvailable)
	if b.Support["chrome"] == "tampered" {
		t.Error("Assessment support map aliases registry state")
	}
}

func TestCheckFeature_AdviceByTier(t *testing.T) {
	reg := testRegistry(t)

	if a := reg.CheckFeature("view-transitions", common.TargetWidelyAvailable); len(a.Advice) == 0 {
		t.Error("Limited feature should always carry advice")
	}
	if a := reg.CheckFeature("container-queries", common.TargetWidelyAvailable); len(a.Advice) == 0 {
		t.Error("Newly available feature below a widely-available target should carry advice")
	}
	if a := reg.CheckFeature("container-queries", common.TargetNewlyAvailable); len(a.Advice) != 0 {
		t.Errorf("Feature meeting its target should carry no advice, got %q", a.Advice)
	}
	if a := reg.CheckFeature("flexbox", common.TargetWidelyAvailable); len(a.Advice) != 0 {
		t.Errorf("Widely available feature should carry no advice, got %q", a.Advice)
	}
}

func TestKebab(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"backdropFilter", "backdrop-filter"},
		{"already-kebab", "already-kebab"},
		{"plain", "plain"},
		{"X", "x"},
	}
	for _, tt := range tests {
		if got := kebab(tt.in); got != tt.want {
			t.Errorf("kebab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
