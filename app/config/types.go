package config

// Seed is a keyword definition loaded from a YAML seed file. Seeds are
// upserted into the keyword store at startup; afterwards keywords are owned
// by the admin API.
type Seed struct {
	Term   string `yaml:"term"`
	Active *bool  `yaml:"active"` // nil means active
	Note   string `yaml:"note"`
}

func (s Seed) IsActive() bool {
	return s.Active == nil || *s.Active
}

type seedFile struct {
	Keywords []Seed `yaml:"keywords"`
}
