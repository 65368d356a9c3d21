package models

// RouteRequest is the body of POST /api/routes. Either a node id or an
// address is given per endpoint; node ids win when both are set.
type RouteRequest struct {
	Start         string   `json:"start,omitempty"`
	End           string   `json:"end,omitempty"`
	StartAddress  string   `json:"startAddress,omitempty"`
	EndAddress    string   `json:"endAddress,omitempty"`
	Preference    string   `json:"preference,omitempty"`
	AbortDistance *float64 `json:"abortDistance,omitempty"`
	Session       string   `json:"session,omitempty"`
}
