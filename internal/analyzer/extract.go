package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/prompts"
)

// Field length limits the timestamp prompt promises; validation enforces
// them even when the model ignores the instruction.
const (
	maxTimestampTitleLen = 50
	maxTimestampDescLen  = 100
	maxTimestampEntries  = 7
)

// Summarize runs the summarization task over a formatted transcript.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - title: video title.
//   - description: video description.
//   - transcript: formatted, truncated transcript text.
// Returns:
//   - *domain.VideoSummary: summary, highlights, and category.
//   - error: *domain.ExtractionError tagged with StageSummary.
func (c *Client) Summarize(ctx context.Context, title, description, transcript string) (*domain.VideoSummary, error) {
	prompt := prompts.Render(prompts.SummarizeVideo, map[string]string{
		"title":       title,
		"description": description,
		"transcript":  transcript,
	})

	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageSummary, err)
	}

	jsonStr, err := extractJSON(stripFences(content))
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageSummary, err)
	}

	var summary domain.VideoSummary
	if err := json.Unmarshal([]byte(jsonStr), &summary); err != nil {
		return nil, domain.NewExtractionError(domain.StageSummary, fmt.Errorf("failed to parse JSON: %w", err))
	}

	summary.Summary = strings.TrimSpace(summary.Summary)
	if summary.Summary == "" {
		return nil, domain.NewExtractionError(domain.StageSummary, fmt.Errorf("empty summary in response"))
	}
	return &summary, nil
}

// timestampsResponse mirrors the JSON shape promised by the timestamps
// prompt; "timestamp" is the model-facing name for the second offset.
type timestampsResponse struct {
	Timestamps []struct {
		Timestamp   int    `json:"timestamp"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"timestamps"`
}

// DetectTimestamps runs the key-moment detection task.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - transcript: formatted, truncated transcript text.
// Returns:
//   - []domain.TimestampEntry: validated entries with non-decreasing
//     offsets, at most 7.
//   - error: *domain.ExtractionError tagged with StageTimestamps.
func (c *Client) DetectTimestamps(ctx context.Context, transcript string) ([]domain.TimestampEntry, error) {
	prompt := prompts.Render(prompts.DetectTimestamps, map[string]string{
		"transcript": transcript,
	})

	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageTimestamps, err)
	}

	jsonStr, err := extractJSON(stripFences(content))
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageTimestamps, err)
	}

	var resp timestampsResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, domain.NewExtractionError(domain.StageTimestamps, fmt.Errorf("failed to parse JSON: %w", err))
	}

	entries := make([]domain.TimestampEntry, 0, len(resp.Timestamps))
	for _, ts := range resp.Timestamps {
		title := strings.TrimSpace(ts.Title)
		if title == "" {
			continue
		}
		seconds := ts.Timestamp
		if seconds < 0 {
			seconds = 0
		}
		entries = append(entries, domain.TimestampEntry{
			Seconds:     seconds,
			Title:       clampRunes(title, maxTimestampTitleLen),
			Description: clampRunes(strings.TrimSpace(ts.Description), maxTimestampDescLen),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seconds < entries[j].Seconds
	})
	if len(entries) > maxTimestampEntries {
		entries = entries[:maxTimestampEntries]
	}
	return entries, nil
}

// toolsResponse mirrors the JSON shape promised by the tools prompt.
type toolsResponse struct {
	Tools []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		PricingType string   `json:"pricingType"`
		UseCases    []string `json:"useCases"`
	} `json:"tools"`
}

// DetectTools runs the tool mention extraction task.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - title: video title.
//   - transcript: formatted, truncated transcript text.
// Returns:
//   - []domain.DetectedTool: extracted descriptors with normalized pricing.
//   - error: *domain.ExtractionError tagged with StageTools.
func (c *Client) DetectTools(ctx context.Context, title, transcript string) ([]domain.DetectedTool, error) {
	prompt := prompts.Render(prompts.DetectTools, map[string]string{
		"title":      title,
		"transcript": transcript,
	})

	content, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageTools, err)
	}

	jsonStr, err := extractJSON(stripFences(content))
	if err != nil {
		return nil, domain.NewExtractionError(domain.StageTools, err)
	}

	var resp toolsResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, domain.NewExtractionError(domain.StageTools, fmt.Errorf("failed to parse JSON: %w", err))
	}

	tools := make([]domain.DetectedTool, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		name := strings.TrimSpace(tool.Name)
		if name == "" {
			continue
		}
		tools = append(tools, domain.DetectedTool{
			Name:        name,
			Description: strings.TrimSpace(tool.Description),
			Category:    strings.TrimSpace(tool.Category),
			PricingType: string(domain.NormalizePricing(tool.PricingType)),
			UseCases:    tool.UseCases,
		})
	}
	return tools, nil
}
