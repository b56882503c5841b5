package integration

import (
	"fmt"

	"github.com/anisan-cli/bgmsync/source"
)

// Status is how far a sync got.
type Status string

const (
	// Ineligible items failed the type, numbering or genre gate.
	Ineligible Status = "ineligible"
	// NoMatch means the series has no acceptable subject in the tracking catalog.
	NoMatch Status = "no_match"
	// Unmapped means the season or episodes are not in the tracking catalog yet.
	Unmapped Status = "unmapped"
	// Propagated means every located episode was marked.
	Propagated Status = "propagated"
	// PartiallyPropagated means a mark call failed after zero or more succeeded.
	PartiallyPropagated Status = "partially_propagated"
)

// Reason is a stable, machine-readable cause of a non-propagated outcome.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNotEpisode        Reason = "not_episode"
	ReasonZeroNumber        Reason = "zero_number"
	ReasonGenreMismatch     Reason = "genre_mismatch"
	ReasonNoCandidates      Reason = "no_candidates"
	ReasonLowSimilarity     Reason = "low_similarity"
	ReasonNoEpisodes        Reason = "no_episodes"
	ReasonMarkFailed        Reason = "mark_failed"
	ReasonUnsupportedServer Reason = "unsupported_server"
)

// Mark is one watch mark sent to the tracking catalog.
type Mark struct {
	SeasonID      int `json:"season_id"`
	EpisodeID     int `json:"episode_id"`
	EpisodeNumber int `json:"episode_number"`
}

// Outcome reports what a sync did.
type Outcome struct {
	Status   Status          `json:"status"`
	Reason   Reason          `json:"reason,omitempty"`
	Series   *source.Series  `json:"series,omitempty"`
	Subject  *source.Subject `json:"subject,omitempty"`
	Season   int             `json:"season,omitempty"`
	Episodes []int           `json:"episodes,omitempty"`
	Ratio    float64         `json:"ratio,omitempty"`
	Marks    []Mark          `json:"marks"`
	// FailedAt is the index of the pair whose mark failed, or -1.
	FailedAt int `json:"failed_at"`
}

func newOutcome() *Outcome {
	return &Outcome{Marks: []Mark{}, FailedAt: -1}
}

func (o *Outcome) stop(status Status, reason Reason) *Outcome {
	o.Status, o.Reason = status, reason
	return o
}

// Synced reports whether at least one episode was marked.
func (o *Outcome) Synced() bool {
	return o != nil && len(o.Marks) > 0
}

func (o *Outcome) String() string {
	if o.Reason == ReasonNone {
		return fmt.Sprintf("%s (%d marked)", o.Status, len(o.Marks))
	}
	return fmt.Sprintf("%s: %s (%d marked)", o.Status, o.Reason, len(o.Marks))
}
