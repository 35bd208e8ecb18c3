package models

// UserConfig is the stored pair of platform usernames.
type UserConfig struct {
	LC  string `json:"lc"`
	GFG string `json:"gfg"`
}
