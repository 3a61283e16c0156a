// Package profile defines the normalized profile record produced by the
// external scraper. A record is immutable for the lifetime of a session.
package profile

// Experience is a single position held by the profile owner.
type Experience struct {
	Title   string `json:"title" mapstructure:"title"`
	Company string `json:"company" mapstructure:"company"`
}

// Education is a single education entry.
type Education struct {
	Degree string `json:"degree" mapstructure:"degree"`
	School string `json:"school" mapstructure:"school"`
}

// Record is the normalized profile shape every advisor consumes.
type Record struct {
	Name       string       `json:"name" mapstructure:"name"`
	Headline   string       `json:"headline" mapstructure:"headline"`
	About      string       `json:"about" mapstructure:"about"`
	Location   string       `json:"location" mapstructure:"location"`
	Experience []Experience `json:"experience" mapstructure:"experience"`
	Education  []Education  `json:"education" mapstructure:"education"`
	Skills     []string     `json:"skills" mapstructure:"skills"`
	URL        string       `json:"url" mapstructure:"url"`
}

// DisplayName returns the profile owner's name, or a neutral placeholder when
// the scraper produced none.
func (r *Record) DisplayName() string {
	if r == nil || r.Name == "" {
		return "User"
	}
	return r.Name
}
