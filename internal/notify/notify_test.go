package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbelyaev/ferry/internal/models"
)

func ok(name, url string) models.Outcome {
	return models.Outcome{Name: name, URL: url, OK: true}
}

func fail(name, msg string) models.Outcome {
	return models.Outcome{Name: name, ErrMessage: msg}
}

func TestParseLinkFormat(t *testing.T) {
	assert.Equal(t, LinkURL, ParseLinkFormat("url"))
	assert.Equal(t, LinkHTML, ParseLinkFormat("html"))
	assert.Equal(t, LinkMarkdown, ParseLinkFormat("markdown"))
	assert.Equal(t, LinkURL, ParseLinkFormat("whatever"))
	assert.Equal(t, LinkURL, ParseLinkFormat(""))
}

func TestFormatLink(t *testing.T) {
	assert.Equal(t, "https://x/a.png", FormatLink(LinkURL, "a.png", "https://x/a.png"))
	assert.Equal(t, `<img src="https://x/a.png" alt="a.png">`, FormatLink(LinkHTML, "a.png", "https://x/a.png"))
	assert.Equal(t, "![a.png](https://x/a.png)", FormatLink(LinkMarkdown, "a.png", "https://x/a.png"))
}

func TestClassify_EmptyBatch(t *testing.T) {
	n := Classify(models.BatchResult{}, LinkURL)
	assert.Equal(t, ShapeSingleFailure, n.Shape)
}

func TestClassify_SingleSuccessCarriesFormattedLink(t *testing.T) {
	r := models.BatchResult{Succeeded: []models.Outcome{ok("a.png", "https://x/a.png")}}

	n := Classify(r, LinkMarkdown)
	assert.Equal(t, ShapeSingleSuccess, n.Shape)
	assert.Equal(t, "![a.png](https://x/a.png)", n.Link)
	assert.Equal(t, 1, n.Succeeded)
}

func TestClassify_SingleFailureCarriesMessage(t *testing.T) {
	r := models.BatchResult{Failed: []models.Outcome{fail("a.png", "quota exceeded")}}

	n := Classify(r, LinkURL)
	assert.Equal(t, ShapeSingleFailure, n.Shape)
	assert.Equal(t, "quota exceeded", n.Message)
}

func TestClassify_AggregateShapes(t *testing.T) {
	tests := []struct {
		name      string
		result    models.BatchResult
		wantShape Shape
	}{
		{
			name: "all succeeded",
			result: models.BatchResult{
				Succeeded: []models.Outcome{ok("a", "u1"), ok("b", "u2")},
			},
			wantShape: ShapeAllSucceeded,
		},
		{
			name: "all failed",
			result: models.BatchResult{
				Failed: []models.Outcome{fail("a", "x"), fail("b", "y")},
			},
			wantShape: ShapeAllFailed,
		},
		{
			name: "mixed",
			result: models.BatchResult{
				Succeeded: []models.Outcome{ok("a", "u1")},
				Failed:    []models.Outcome{fail("b", "y")},
			},
			wantShape: ShapeMixed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			n := Classify(tt.result, LinkURL)
			assert.Equal(t, tt.wantShape, n.Shape)
			assert.Equal(t, len(tt.result.Succeeded), n.Succeeded)
			assert.Equal(t, len(tt.result.Failed), n.Failed)
		})
	}
}

func TestFailure(t *testing.T) {
	n := Failure(errors.New("no adapter"))
	assert.Equal(t, ShapeSingleFailure, n.Shape)
	assert.Equal(t, "no adapter", n.Message)
}
