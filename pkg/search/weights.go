package search

import "github.com/grinta-launcher/grinta/pkg/models"

// Weights assigns a ranking bonus to each item kind. Both presets keep the
// order App > Note > Bookmark > Unknown > WebSearch > WebSuggestion.
type Weights struct {
	Name  string
	Bonus map[models.Kind]int
}

var (
	// InteractiveWeights keep the bonus small so the fuzzy score dominates and
	// the kind only separates near ties.
	InteractiveWeights = Weights{
		Name: "interactive",
		Bonus: map[models.Kind]int{
			models.KindApp:           15,
			models.KindNote:          12,
			models.KindBookmark:      9,
			models.KindUnknown:       6,
			models.KindWebSearch:     3,
			models.KindWebSuggestion: 0,
		},
	}

	// StreamingWeights make the kind dominate. Used for batch output.
	StreamingWeights = Weights{
		Name: "streaming",
		Bonus: map[models.Kind]int{
			models.KindApp:           5000,
			models.KindNote:          4000,
			models.KindBookmark:      3000,
			models.KindUnknown:       2000,
			models.KindWebSearch:     1000,
			models.KindWebSuggestion: 0,
		},
	}
)

// For returns the bonus of kind
func (w Weights) For(kind models.Kind) int {
	return w.Bonus[kind]
}

// WeightsByName looks up a preset by name
func WeightsByName(name string) (Weights, bool) {
	switch name {
	case InteractiveWeights.Name:
		return InteractiveWeights, true
	case StreamingWeights.Name:
		return StreamingWeights, true
	}
	return Weights{}, false
}
