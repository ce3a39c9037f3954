package baseline

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"bcheck/common"
)

//go:embed features.json
var featuresData []byte

// Browsers is the fixed browser set every support snapshot is projected onto.
var Browsers = []string{"chrome", "firefox", "safari", "edge", "chrome-android", "firefox-android", "safari-ios"}

// Record describes a single web-platform feature from the embedded dataset.
// Records are built once at registry construction and never mutated.
type Record struct {
	ID      string            // canonical feature id (e.g. "container-queries")
	Name    string            // display name
	Tier    common.Tier       // mapped from the dataset's raw 2-level status
	Support map[string]string // browser -> minimum version, absent means unsupported
	Keys    []string          // raw compatibility keys declared by the dataset
}

type rawFeature struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Baseline string            `json:"baseline"`
	Support  map[string]string `json:"support"`
	Keys     []string          `json:"keys"`
}

type rawDataset struct {
	Features []rawFeature `json:"features"`
}

// tierFromStatus maps the dataset's raw status to a tier: "high" is widely
// available, "low" is newly available, anything else is limited.
func tierFromStatus(status string) common.Tier {
	switch status {
	case "high":
		return common.TierWidelyAvailable
	case "low":
		return common.TierNewlyAvailable
	default:
		return common.TierLimited
	}
}

// loadDataset decodes the embedded feature dataset preserving file order,
// which the registry relies on for deterministic index construction.
func loadDataset() ([]*Record, error) {
	var raw rawDataset
	if err := json.Unmarshal(featuresData, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode embedded feature dataset: %w", err)
	}
	if len(raw.Features) == 0 {
		return nil, fmt.Errorf("embedded feature dataset is empty")
	}

	records := make([]*Record, 0, len(raw.Features))
	for _, f := range raw.Features {
		if len(f.ID) == 0 {
			return nil, fmt.Errorf("feature record without id (name %q)", f.Name)
		}
		support := make(map[string]string, len(Browsers))
		for _, b := range Browsers {
			if v, ok := f.Support[b]; ok {
				support[b] = v
			}
		}
		records = append(records, &Record{
			ID:      f.ID,
			Name:    f.Name,
			Tier:    tierFromStatus(f.Baseline),
			Support: support,
			Keys:    f.Keys,
		})
	}
	return records, nil
}
