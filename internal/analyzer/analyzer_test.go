package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/outfit-finder/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel implements llm.Completer for testing
type stubModel struct {
	reply     string
	err       error
	calls     int
	prompt    string
	maxTokens int
}

func (s *stubModel) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.calls++
	s.prompt = prompt
	s.maxTokens = maxTokens
	return s.reply, s.err
}

const validPlan = `{
  "summary": "A breezy summer look built around a floral dress",
  "categories": [
    {"name": "Dress", "icon": "👗", "searchQuery": "floral midi sundress", "priceRange": "$40-$90"},
    {"name": "Shoes", "icon": "👡", "searchQuery": "tan leather flat sandals", "priceRange": "$30-$70"},
    {"name": "Accessories", "icon": "👜", "searchQuery": "straw crossbody bag", "priceRange": "$25-$60"}
  ]
}`

func newTestAnalyzer(t *testing.T, model *stubModel) *Analyzer {
	t.Helper()

	a, err := New(model, 0, logger.New("error"))
	require.NoError(t, err)
	return a
}

func TestAnalyzer_Analyze_Success(t *testing.T) {
	model := &stubModel{reply: validPlan}
	a := newTestAnalyzer(t, model)

	plan, err := a.Analyze(context.Background(), "casual summer outfit with a floral dress")
	require.NoError(t, err)

	assert.Equal(t, "A breezy summer look built around a floral dress", plan.Summary)
	require.Len(t, plan.Categories, 3)
	assert.Equal(t, "Dress", plan.Categories[0].Name)
	assert.Equal(t, "👗", plan.Categories[0].Icon)
	assert.Equal(t, "floral midi sundress", plan.Categories[0].SearchQuery)
	assert.Equal(t, "$40-$90", plan.Categories[0].PriceRange)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, DefaultMaxTokens, model.maxTokens)
	assert.Contains(t, model.prompt, `"casual summer outfit with a floral dress"`)
}

func TestAnalyzer_Analyze_FencedReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "json fence", reply: "```json\n" + validPlan + "\n```"},
		{name: "bare fence", reply: "```\n" + validPlan + "\n```"},
		{name: "fence with surrounding whitespace", reply: "\n\n```json\n" + validPlan + "\n```\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(t, &stubModel{reply: tt.reply})

			plan, err := a.Analyze(context.Background(), "summer outfit")
			require.NoError(t, err)
			assert.Len(t, plan.Categories, 3)
		})
	}
}

func TestAnalyzer_Analyze_EmptyDescription(t *testing.T) {
	for _, description := range []string{"", "   ", "\n\t"} {
		model := &stubModel{reply: validPlan}
		a := newTestAnalyzer(t, model)

		_, err := a.Analyze(context.Background(), description)
		assert.ErrorIs(t, err, ErrEmptyDescription)
		assert.Zero(t, model.calls, "no model call for an empty description")
	}
}

func TestAnalyzer_Analyze_UpstreamError(t *testing.T) {
	a := newTestAnalyzer(t, &stubModel{err: errors.New("rate limit exceeded")})

	_, err := a.Analyze(context.Background(), "black tie gala look")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "rate limit exceeded", err.Error())
	assert.NotErrorIs(t, err, ErrInvalidPlan)
}

func TestAnalyzer_Analyze_InvalidPlan(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "not json", reply: "Sure! Here is your outfit: a dress."},
		{name: "truncated json", reply: `{"summary": "x", "categories": [`},
		{name: "missing categories", reply: `{"summary": "A look"}`},
		{name: "empty categories", reply: `{"summary": "A look", "categories": []}`},
		{name: "categories not an array", reply: `{"summary": "A look", "categories": "Dress"}`},
		{name: "missing summary", reply: `{"categories": [{"name": "Dress", "icon": "👗", "searchQuery": "dress", "priceRange": ""}]}`},
		{name: "category without search query", reply: `{"summary": "A look", "categories": [{"name": "Dress", "icon": "👗"}]}`},
		{name: "blank category name", reply: `{"summary": "A look", "categories": [{"name": "   ", "icon": "👗", "searchQuery": "dress"}]}`},
		{name: "array instead of object", reply: `[{"name": "Dress"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(t, &stubModel{reply: tt.reply})

			plan, err := a.Analyze(context.Background(), "summer outfit")
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}
}

func TestAnalyzer_Analyze_TrimsAndToleratesExtraFields(t *testing.T) {
	reply := `{"summary": "  Sporty  ", "mood": "energetic", "categories": [
		{"name": " Sneakers ", "icon": "👟", "searchQuery": " white running shoes ", "priceRange": "$60-$120", "color": "white"}
	]}`
	a := newTestAnalyzer(t, &stubModel{reply: reply})

	plan, err := a.Analyze(context.Background(), "sporty weekend outfit")
	require.NoError(t, err)

	assert.Equal(t, "Sporty", plan.Summary)
	require.Len(t, plan.Categories, 1)
	assert.Equal(t, "Sneakers", plan.Categories[0].Name)
	assert.Equal(t, "white running shoes", plan.Categories[0].SearchQuery)
}

func TestNew_RequiresModel(t *testing.T) {
	_, err := New(nil, 0, logger.New("error"))
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean json unchanged", in: `{"a":1}`, want: `{"a":1}`},
		{name: "clean json keeps whitespace", in: " {\"a\":1}\n", want: " {\"a\":1}\n"},
		{name: "json tagged fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "untagged fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fence without newline", in: "```json{\"a\":1}```", want: `{"a":1}`},
		{name: "text around fence", in: "Here you go:\n```json\n{\"a\":1}\n```", want: "Here you go:\n{\"a\":1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCodeFences(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripCodeFences(got), "stripping must be idempotent")
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(`red "power" suit`)

	assert.Contains(t, prompt, `Outfit description: "red "power" suit"`)
	assert.Contains(t, prompt, `"searchQuery"`)
	assert.Contains(t, prompt, "3 to 5")
}
