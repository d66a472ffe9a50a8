package config

import (
	"os"

	"hms-system/internal/risk"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// MatrixLabels is the on-disk form of risk.Labels:
//
//	[[likelihood]]
//	score = 1
//	name = "Svært lite sannsynlig"
//
//	[[consequence]]
//	score = 1
//	name = "Ubetydelig"
type MatrixLabels struct {
	Likelihood  []LabelEntry `toml:"likelihood"`
	Consequence []LabelEntry `toml:"consequence"`
}

type LabelEntry struct {
	Score int    `toml:"score"`
	Name  string `toml:"name"`
}

// LoadLabels returns the default labels when path is empty. Entries in the
// file override defaults for their score; missing scores keep the default.
func LoadLabels(path string) (risk.Labels, error) {
	labels := risk.DefaultLabels()
	if path == "" {
		return labels, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return labels, goerr.Wrap(err, "failed to read matrix labels", goerr.V("path", path))
	}

	var file MatrixLabels
	if err := toml.Unmarshal(raw, &file); err != nil {
		return labels, goerr.Wrap(err, "failed to parse matrix labels", goerr.V("path", path))
	}

	if err := apply(labels.Likelihood[:], file.Likelihood, "likelihood"); err != nil {
		return labels, goerr.Wrap(err, "invalid matrix labels", goerr.V("path", path))
	}
	if err := apply(labels.Consequence[:], file.Consequence, "consequence"); err != nil {
		return labels, goerr.Wrap(err, "invalid matrix labels", goerr.V("path", path))
	}

	return labels, labels.Validate()
}

func apply(dst []string, entries []LabelEntry, axis string) error {
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Score < risk.MinScale || e.Score > risk.MaxScale {
			return goerr.New("label score must be between 1 and 5", goerr.V("axis", axis), goerr.V("score", e.Score))
		}
		if e.Name == "" {
			return goerr.New("label name is required", goerr.V("axis", axis), goerr.V("score", e.Score))
		}
		if seen[e.Score] {
			return goerr.New("duplicate label score", goerr.V("axis", axis), goerr.V("score", e.Score))
		}
		seen[e.Score] = true
		dst[e.Score-1] = e.Name
	}
	return nil
}
