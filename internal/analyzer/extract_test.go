package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
)

const testEndpoint = "https://model.test/v1"

// jsonResponder serves body with a JSON content type so resty unmarshals
// it into SetResult/SetError targets.
func jsonResponder(status int, body string) httpmock.Responder {
	return httpmock.NewStringResponder(status, body).
		HeaderSet(http.Header{"Content-Type": []string{"application/json"}})
}

func newTestAnalyzer() *Client {
	c := NewClient(&ClientConfig{Model: "test-model", APIKey: "key", BaseURL: testEndpoint})
	httpmock.ActivateNonDefault(c.client.GetClient())
	return c
}

func completionReply(content string) string {
	b, _ := json.Marshal(content)
	return fmt.Sprintf(`{"choices":[{"message":{"content":%s}}]}`, string(b))
}

func TestSummarize(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	reply := "```json\n{\"summary\":\"A tour of coding assistants.\",\"highlights\":[\"h1\",\"h2\"],\"category\":\"Development\"}\n```"
	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply(reply)))

	summary, err := c.Summarize(context.Background(), "Title", "Desc", "[0:00] hi")
	require.NoError(t, err)
	assert.Equal(t, "A tour of coding assistants.", summary.Summary)
	assert.Equal(t, []string{"h1", "h2"}, summary.Highlights)
	assert.Equal(t, "Development", summary.Category)
}

func TestSummarizeEmptySummary(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply(`{"summary":"  ","highlights":[],"category":"x"}`)))

	_, err := c.Summarize(context.Background(), "Title", "Desc", "text")
	require.Error(t, err)

	var extractionErr *domain.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, domain.StageSummary, extractionErr.Stage)
}

func TestSummarizeAPIError(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(429, `{"error":{"message":"rate limited","type":"rate_limit"}}`))

	_, err := c.Summarize(context.Background(), "Title", "Desc", "text")
	require.Error(t, err)

	var extractionErr *domain.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, domain.StageSummary, extractionErr.Stage)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDetectTimestamps(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	longTitle := "This title is much much much much longer than the fifty character limit allows"
	reply := fmt.Sprintf(`{"timestamps":[
		{"timestamp":300,"title":"Later point","description":"d2"},
		{"timestamp":10,"title":%q,"description":"d1"},
		{"timestamp":-5,"title":"Clamped","description":"d0"},
		{"timestamp":60,"title":"","description":"dropped"}
	]}`, longTitle)
	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply(reply)))

	entries, err := c.DetectTimestamps(context.Background(), "[0:00] hi")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// sorted by offset, negative clamped to zero, empty title dropped
	assert.Equal(t, 0, entries[0].Seconds)
	assert.Equal(t, 10, entries[1].Seconds)
	assert.Equal(t, 300, entries[2].Seconds)
	assert.LessOrEqual(t, len([]rune(entries[1].Title)), 50)
}

func TestDetectTimestampsCapsAtSeven(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	reply := `{"timestamps":[`
	for i := 0; i < 10; i++ {
		if i > 0 {
			reply += ","
		}
		reply += fmt.Sprintf(`{"timestamp":%d,"title":"t%d","description":"d"}`, i*30, i)
	}
	reply += `]}`
	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply(reply)))

	entries, err := c.DetectTimestamps(context.Background(), "[0:00] hi")
	require.NoError(t, err)
	assert.Len(t, entries, 7)
}

func TestDetectTools(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	reply := `{"tools":[
		{"name":"ChatGPT","description":"chatbot","category":"Productivity","pricingType":"Freemium","useCases":["Writing"]},
		{"name":"Cursor","description":"editor","category":"Development","pricingType":"enterprise","useCases":["Coding"]},
		{"name":"","description":"dropped"}
	]}`
	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply(reply)))

	tools, err := c.DetectTools(context.Background(), "Title", "[0:00] hi")
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "ChatGPT", tools[0].Name)
	assert.Equal(t, "freemium", tools[0].PricingType)
	// unknown pricing falls back to freemium
	assert.Equal(t, "freemium", tools[1].PricingType)
}

func TestDetectToolsMalformedJSON(t *testing.T) {
	c := newTestAnalyzer()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", testEndpoint+"/chat/completions",
		jsonResponder(200, completionReply("I found no tools worth mentioning.")))

	_, err := c.DetectTools(context.Background(), "Title", "text")
	require.Error(t, err)

	var extractionErr *domain.ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, domain.StageTools, extractionErr.Stage)
}
