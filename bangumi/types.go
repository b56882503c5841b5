package bangumi

import "github.com/anisan-cli/bgmsync/source"

// Subject types.
const (
	subjectTypeAnime = 2
)

// Episode types; only main episodes are synced.
const (
	episodeTypeMain = 0
)

// Collection states shared by subject and episode collections.
const (
	collectionDone  = 2
	collectionDoing = 3
)

// relationSequel is the relation label linking a season to the next one.
const relationSequel = "续集"

type subject struct {
	ID       int    `json:"id"`
	Type     int    `json:"type"`
	Name     string `json:"name"`
	NameCN   string `json:"name_cn"`
	Date     string `json:"date"`
	Platform string `json:"platform"`
	Eps      int    `json:"eps"`
}

func (s *subject) record() *source.Subject {
	return &source.Subject{ID: s.ID, Name: s.Name, NameCN: s.NameCN, Date: s.Date}
}

// series reports whether the subject airs as a season (TV or web), as opposed to a movie or OVA.
func (s *subject) series() bool {
	switch s.Platform {
	case "TV", "WEB":
		return true
	default:
		return false
	}
}

type relation struct {
	ID       int    `json:"id"`
	Type     int    `json:"type"`
	Name     string `json:"name"`
	NameCN   string `json:"name_cn"`
	Relation string `json:"relation"`
}

type episode struct {
	ID      int     `json:"id"`
	Type    int     `json:"type"`
	Ep      float64 `json:"ep"`
	Sort    float64 `json:"sort"`
	Name    string  `json:"name"`
	NameCN  string  `json:"name_cn"`
	Airdate string  `json:"airdate"`
}

type user struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

type collection struct {
	SubjectID int  `json:"subject_id"`
	Type      int  `json:"type"`
	Private   bool `json:"private"`
}
