package compass

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/career-compass/internal/model"
)

func testQueries() []Query {
	return []Query{
		{Kind: QueryProfessionals, Text: "q1"},
		{Kind: QuerySalary, Text: "q2"},
		{Kind: QueryJobs, Text: "q3"},
	}
}

func TestCollect_IDsIncreaseAcrossQueries(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "q1", 3).Return([]SearchHit{
		{Title: "Jane", Link: "https://www.linkedin.com/in/jane", Snippet: "Research scientist at IBM"},
		{Title: "Bob", Link: "https://www.linkedin.com/in/bob", Snippet: "Data scientist"},
	}, nil)
	s.On("Search", mock.Anything, "q2", 3).Return([]SearchHit{
		{Title: "Salaries", Link: "https://www.glassdoor.com/s", Snippet: "Average $120k"},
	}, nil)
	s.On("Search", mock.Anything, "q3", 3).Return([]SearchHit{
		{Title: "Jobs", Link: "https://www.indeed.com/j", Snippet: "200 openings"},
	}, nil)

	ev, err := NewCollector(s, 3, 0).Collect(context.Background(), testQueries())
	require.NoError(t, err)
	require.Len(t, ev.Items, 4)

	for i, item := range ev.Items {
		assert.Equal(t, i+1, item.CitationID)
		assert.Equal(t, item, ev.Sources[item.CitationID])
	}
	assert.Equal(t, model.SourceLinkedIn, ev.Items[0].Category)
	assert.Equal(t, model.SourceGlassdoor, ev.Items[2].Category)
	assert.Equal(t, model.SourceIndeed, ev.Items[3].Category)

	assert.Equal(t,
		"[Source ID: 1] Research scientist at IBM\n"+
			"[Source ID: 2] Data scientist\n"+
			"[Source ID: 3] Average $120k\n"+
			"[Source ID: 4] 200 openings",
		ev.Context)
	s.AssertExpectations(t)
}

func TestCollect_FailedSearchSkipped(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "q1", 3).Return([]SearchHit{
		{Title: "A", Link: "https://a.example.com", Snippet: "first"},
	}, nil)
	s.On("Search", mock.Anything, "q2", 3).Return(nil, errors.New("quota exceeded"))
	s.On("Search", mock.Anything, "q3", 3).Return([]SearchHit{
		{Title: "C", Link: "https://c.example.com", Snippet: "third"},
	}, nil)

	ev, err := NewCollector(s, 3, 0).Collect(context.Background(), testQueries())
	require.NoError(t, err)
	require.Len(t, ev.Items, 2)
	assert.Equal(t, 1, ev.Items[0].CitationID)
	assert.Equal(t, 2, ev.Items[1].CitationID)
	assert.Equal(t, "third", ev.Items[1].Snippet)
	s.AssertNumberOfCalls(t, "Search", 3)
}

func TestCollect_AllSearchesFail(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, mock.Anything, 3).Return(nil, errors.New("down"))

	ev, err := NewCollector(s, 3, 0).Collect(context.Background(), testQueries())
	require.NoError(t, err)
	assert.True(t, ev.Empty())
	assert.Empty(t, ev.Context)
}

func TestCollect_BlankSnippetsConsumeNoID(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, "q1", 3).Return([]SearchHit{
		{Title: "Empty", Link: "https://x.example.com", Snippet: "   "},
		{Title: "Real", Link: "https://y.example.com", Snippet: "  useful  "},
	}, nil)

	ev, err := NewCollector(s, 3, 0).Collect(context.Background(), testQueries()[:1])
	require.NoError(t, err)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, 1, ev.Items[0].CitationID)
	assert.Equal(t, "Real", ev.Items[0].Title)
	assert.Equal(t, "[Source ID: 1] useful", ev.Context)
}

func TestCollect_PacesSearches(t *testing.T) {
	s := &mockSearcher{}
	s.On("Search", mock.Anything, mock.Anything, 3).Return([]SearchHit{}, nil)

	start := time.Now()
	_, err := NewCollector(s, 3, 40*time.Millisecond).Collect(context.Background(), testQueries())
	require.NoError(t, err)

	// Three searches need two waits.
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
	s.AssertNumberOfCalls(t, "Search", 3)
}

func TestCollect_ContextCanceledBeforeStart(t *testing.T) {
	s := &mockSearcher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(s, 3, 0).Collect(ctx, testQueries())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	s.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollect_ContextCanceledDuringSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &mockSearcher{}
	s.On("Search", mock.Anything, "q1", 3).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	_, err := NewCollector(s, 3, 0).Collect(ctx, testQueries())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	s.AssertNumberOfCalls(t, "Search", 1)
}
