package bangumi

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anisan-cli/bgmsync/source"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// normalize folds width and case, then keeps only letters and digits.
func normalize(s string) string {
	// a Caser is stateful, so one is made per call
	s = cases.Fold().String(width.Fold.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Similarity scores two titles in [0, 1].
//
// The base score is the normalized Levenshtein distance. When every rune of the shorter title occurs
// in order inside the longer one, the score is raised to 2M/T with M the shorter length and T the
// combined length, so a bare title still scores well against the same title with a subtitle.
func Similarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	score := 1 - float64(levenshtein.Distance(a, b))/float64(max(la, lb))

	shorter, longer, ls := a, b, la
	if la > lb {
		shorter, longer, ls = b, a, lb
	}
	if fuzzy.Match(shorter, longer) {
		score = max(score, 2*float64(ls)/float64(la+lb))
	}

	return score
}

// TitleRatio is the best similarity between the subject's names and the series titles: the native
// name against the original title, the Chinese name against the display title and the native name
// against the display title.
func TitleRatio(series *source.Series, subject *source.Subject) float64 {
	original := series.OriginalTitle
	if original == "" {
		original = series.Title
	}

	return lo.Max([]float64{
		Similarity(subject.Name, original),
		Similarity(subject.NameCN, series.Title),
		Similarity(subject.Name, series.Title),
	})
}

// TitleRatio scores a candidate subject against the series, see TitleRatio.
func (c *Client) TitleRatio(series *source.Series, subject *source.Subject) float64 {
	return TitleRatio(series, subject)
}
