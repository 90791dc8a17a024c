package search

import (
	"sort"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Input is everything a single ranking pass looks at
type Input struct {
	Query       string
	History     []models.Item // oldest first
	Catalog     []models.Item // apps, notes, bookmarks, shortcuts
	Files       []models.Item
	Suggestions []models.Item
	Extra       []models.Item // e.g. the direct web search item
}

// Result represents a ranked item with its score breakdown
type Result struct {
	Item  models.Item
	Score int // fuzzy score, max of label and value
	Bonus int // kind bonus
	Total int
}

type candidate struct {
	item     models.Item
	filtered bool // catalog items must match the query to be shown
	position int
}

// Rank produces the ordered view for in. An empty query shows the history,
// most recent first, without scoring. Otherwise catalog items are kept only
// when they match the query, while file, suggestion and extra items are kept
// as delivered since their sources already searched for the query.
func Rank(in Input, weights Weights) []Result {
	if in.Query == "" {
		results := make([]Result, 0, len(in.History))
		for i := len(in.History) - 1; i >= 0; i-- {
			results = append(results, Result{Item: in.History[i]})
		}
		return results
	}

	var candidates []candidate
	add := func(items []models.Item, filtered bool) {
		for _, item := range items {
			candidates = append(candidates, candidate{item: item, filtered: filtered, position: len(candidates)})
		}
	}
	add(in.Catalog, true)
	add(in.Files, false)
	add(in.Suggestions, false)
	add(in.Extra, false)

	labels := make([]string, len(candidates))
	values := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.item.Label
		values[i] = c.item.Value
	}
	labelScores := scoreAll(in.Query, labels)
	valueScores := scoreAll(in.Query, values)

	type ranked struct {
		Result
		lowerLabel string
		position   int
	}

	rankedItems := make([]ranked, 0, len(candidates))
	for i, c := range candidates {
		score := max(labelScores[i], valueScores[i])
		if c.filtered && score == 0 &&
			!containsFold(c.item.Label, in.Query) && !containsFold(c.item.Value, in.Query) {
			continue
		}
		bonus := weights.For(c.item.Kind())
		rankedItems = append(rankedItems, ranked{
			Result: Result{
				Item:  c.item,
				Score: score,
				Bonus: bonus,
				Total: score + bonus,
			},
			lowerLabel: strings.ToLower(c.item.Label),
			position:   c.position,
		})
	}

	sort.SliceStable(rankedItems, func(i, j int) bool {
		a, b := rankedItems[i], rankedItems[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.lowerLabel != b.lowerLabel {
			return a.lowerLabel < b.lowerLabel
		}
		if a.Item.Value != b.Item.Value {
			return a.Item.Value < b.Item.Value
		}
		return a.position < b.position
	})

	results := make([]Result, len(rankedItems))
	for i, r := range rankedItems {
		results[i] = r.Result
	}
	return results
}

// Items extracts the items of results in order
func Items(results []Result) []models.Item {
	items := make([]models.Item, len(results))
	for i, r := range results {
		items[i] = r.Item
	}
	return items
}

// Engine ranks inputs with a fixed weight preset and an optional limit
type Engine struct {
	weights Weights
	limit   int
}

// NewEngine creates a new ranking engine. A limit of zero or less keeps every
// result.
func NewEngine(weights Weights, limit int) *Engine {
	return &Engine{weights: weights, limit: limit}
}

// Weights returns the engine's preset
func (e *Engine) Weights() Weights {
	return e.weights
}

// Rank ranks in and applies the limit
func (e *Engine) Rank(in Input) []Result {
	results := Rank(in, e.weights)
	if e.limit > 0 && len(results) > e.limit {
		results = results[:e.limit]
	}
	return results
}
