package source

// Subject is a tracking catalog entry for one series or one season of it.
type Subject struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameCN string `json:"name_cn,omitempty"`
	Date   string `json:"date,omitempty"`
}

// DisplayName prefers the localized name.
func (s *Subject) DisplayName() string {
	if s.NameCN != "" {
		return s.NameCN
	}
	return s.Name
}

// Mapping is the tracking catalog's view of a requested season and episode list.
// EpisodeIDs[i] belongs to the i-th requested episode number. An empty mapping means
// the season or episodes are not in the catalog yet.
type Mapping struct {
	SeasonID   int   `json:"season_id"`
	EpisodeIDs []int `json:"episode_ids"`
}

// Empty reports whether nothing was resolved.
func (m *Mapping) Empty() bool {
	return m == nil || m.SeasonID == 0 || len(m.EpisodeIDs) == 0
}

// User is the identity behind the tracking catalog credentials.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}
