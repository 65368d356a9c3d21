package models

import "github.com/Mammutor/NINA/routing"

// PreferenceInfo describes one selectable routing profile.
type PreferenceInfo struct {
	Name     string          `json:"name"`
	Position int             `json:"position"`
	Weights  routing.Weights `json:"weights"`
}

func PreferenceList(table routing.WeightTable) []PreferenceInfo {
	out := make([]PreferenceInfo, 0, len(routing.Preferences()))
	for _, p := range routing.Preferences() {
		out = append(out, PreferenceInfo{
			Name:     p.String(),
			Position: int(p),
			Weights:  table.For(p),
		})
	}
	return out
}
