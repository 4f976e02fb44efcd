package models

// Profile selects a backend and the options it should be configured with.
// A profile is immutable for the duration of one request.
type Profile struct {
	ID      string            `json:"id"`
	Backend string            `json:"backend"`
	Options map[string]string `json:"options,omitempty"`
	// Proxy, when non-empty, overrides the global proxy setting for
	// transfers made under this profile.
	Proxy string `json:"proxy,omitempty"`
}
