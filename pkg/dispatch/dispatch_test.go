package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grinta-launcher/grinta/pkg/models"
)

type fakeSource struct {
	category Category
	calls    atomic.Int32
	search   func(ctx context.Context, query string) ([]models.Item, error)
}

func (f *fakeSource) Category() Category { return f.category }

func (f *fakeSource) Search(ctx context.Context, query string) ([]models.Item, error) {
	f.calls.Add(1)
	if f.search != nil {
		return f.search(ctx, query)
	}
	return []models.Item{models.NewItem(query, models.VariantFile, "/tmp/"+query)}, nil
}

func instantOptions() Options {
	return Options{
		MinQueryLength: 2,
		Delays:         map[Category]time.Duration{},
		Timeouts:       map[Category]time.Duration{},
	}
}

func TestEditShortQueryClears(t *testing.T) {
	files := &fakeSource{category: CategoryFiles}
	suggestions := &fakeSource{category: CategorySuggestions}
	d := New(instantOptions(), nil, files, suggestions)

	long := d.Edit("cursor")
	require.Len(t, long.Tasks, 2)

	tests := []string{"", "c", "é"}
	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			plan := d.Edit(query)
			assert.Empty(t, plan.Tasks)
			assert.True(t, plan.Clears(CategoryFiles))
			assert.True(t, plan.Clears(CategorySuggestions))
		})
	}

	// The earlier long query's results are stale now.
	for _, task := range long.Tasks {
		assert.False(t, d.Current(task.Token))
		assert.Nil(t, task.Run(context.Background()))
	}
	assert.Zero(t, files.calls.Load())
	assert.Zero(t, suggestions.calls.Load())
}

func TestEditCountsRunes(t *testing.T) {
	d := New(instantOptions(), nil, &fakeSource{category: CategoryFiles})

	plan := d.Edit("日本")
	assert.Len(t, plan.Tasks, 1)
	assert.Empty(t, plan.Clear)
}

func TestEditSkipsCategoriesWithoutSources(t *testing.T) {
	d := New(instantOptions(), nil, &fakeSource{category: CategorySuggestions})

	plan := d.Edit("x")
	assert.Equal(t, []Category{CategorySuggestions}, plan.Clear)
	assert.False(t, plan.Clears(CategoryFiles))
}

func TestGenerationsAdvancePerCategory(t *testing.T) {
	d := New(instantOptions(), nil, &fakeSource{category: CategoryFiles}, &fakeSource{category: CategorySuggestions})

	first := d.Edit("ab")
	second := d.Edit("abc")

	require.Len(t, first.Tasks, 2)
	require.Len(t, second.Tasks, 2)
	for i := range first.Tasks {
		assert.Equal(t, first.Tasks[i].Token.Category, second.Tasks[i].Token.Category)
		assert.Greater(t, second.Tasks[i].Token.Generation, first.Tasks[i].Token.Generation)
		assert.False(t, d.Current(first.Tasks[i].Token))
		assert.True(t, d.Current(second.Tasks[i].Token))
	}

	d.Invalidate(CategoryFiles)
	assert.False(t, d.Current(second.Tasks[0].Token))
	assert.True(t, d.Current(second.Tasks[1].Token))
}

func TestTaskRunDeliversCurrentResults(t *testing.T) {
	d := New(instantOptions(), nil, &fakeSource{category: CategoryFiles})

	plan := d.Edit("report")
	require.Len(t, plan.Tasks, 1)

	batch := plan.Tasks[0].Run(context.Background())
	require.NotNil(t, batch)
	assert.NoError(t, batch.Err)
	assert.Equal(t, "report", batch.Query)
	assert.Equal(t, plan.Tasks[0].Token, batch.Token)
	require.Len(t, batch.Items, 1)
	assert.Equal(t, "report", batch.Items[0].Label)
}

func TestTaskRunDropsResultsSupersededDuringCall(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	src := &fakeSource{
		category: CategoryFiles,
		search: func(ctx context.Context, query string) ([]models.Item, error) {
			close(started)
			<-release
			return []models.Item{models.NewItem(query, models.VariantFile, query)}, nil
		},
	}
	d := New(instantOptions(), nil, src)

	plan := d.Edit("old query")
	result := make(chan *Batch, 1)
	go func() { result <- plan.Tasks[0].Run(context.Background()) }()

	<-started
	d.Edit("o")
	close(release)

	assert.Nil(t, <-result)
}

func TestTaskRunSourceFailure(t *testing.T) {
	boom := errors.New("indexer unavailable")
	d := New(instantOptions(), nil, &fakeSource{
		category: CategoryFiles,
		search: func(ctx context.Context, query string) ([]models.Item, error) {
			return nil, boom
		},
	})

	batch := d.Edit("report").Tasks[0].Run(context.Background())
	require.NotNil(t, batch)
	assert.ErrorIs(t, batch.Err, boom)
	assert.NotNil(t, batch.Items)
	assert.Empty(t, batch.Items)
}

func TestTaskRunTimeout(t *testing.T) {
	opts := instantOptions()
	opts.Timeouts[CategorySuggestions] = 20 * time.Millisecond
	d := New(opts, nil, &fakeSource{
		category: CategorySuggestions,
		search: func(ctx context.Context, query string) ([]models.Item, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	start := time.Now()
	batch := d.Edit("golang").Tasks[0].Run(context.Background())
	require.NotNil(t, batch)
	assert.ErrorIs(t, batch.Err, context.DeadlineExceeded)
	assert.Empty(t, batch.Items)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTaskRunCancelledDuringDebounce(t *testing.T) {
	opts := instantOptions()
	opts.Delays[CategoryFiles] = time.Hour
	src := &fakeSource{category: CategoryFiles}
	d := New(opts, nil, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, d.Edit("report").Tasks[0].Run(ctx))
	assert.Zero(t, src.calls.Load())
}

func TestTaskRunDebounceCollapsesTyping(t *testing.T) {
	opts := instantOptions()
	opts.Delays[CategoryFiles] = 30 * time.Millisecond
	src := &fakeSource{category: CategoryFiles}
	d := New(opts, nil, src)

	var tasks []*Task
	for _, query := range []string{"re", "rep", "repo", "report"} {
		tasks = append(tasks, d.Edit(query).Tasks...)
	}

	var delivered []*Batch
	for _, task := range tasks {
		if batch := task.Run(context.Background()); batch != nil {
			delivered = append(delivered, batch)
		}
	}

	require.Len(t, delivered, 1)
	assert.Equal(t, "report", delivered[0].Query)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestGoAndDrain(t *testing.T) {
	d := New(instantOptions(), nil, &fakeSource{category: CategoryFiles}, &fakeSource{category: CategorySuggestions})
	out := make(chan Batch, 4)

	for _, task := range d.Edit("notes").Tasks {
		Go(context.Background(), task, out)
	}

	var batches []Batch
	require.Eventually(t, func() bool {
		batches = append(batches, Drain(out)...)
		return len(batches) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, Drain(out))
}

func TestDrainClosedChannel(t *testing.T) {
	ch := make(chan Batch, 1)
	ch <- Batch{Query: "x"}
	close(ch)

	assert.Len(t, Drain(ch), 1)
}

func TestOptionsFromSettings(t *testing.T) {
	settings := models.DefaultSettings().Search
	assert.Equal(t, DefaultOptions(), OptionsFromSettings(settings))
}
