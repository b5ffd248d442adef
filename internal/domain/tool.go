package domain

import (
	"regexp"
	"strings"
	"time"
)

// PricingType represents a tool's pricing tier.
type PricingType string

const (
	PricingFree     PricingType = "free"
	PricingFreemium PricingType = "freemium"
	PricingPaid     PricingType = "paid"
)

// NormalizePricing maps free-form model output to a valid pricing tier,
// defaulting to freemium when the value is unrecognized.
func NormalizePricing(s string) PricingType {
	switch PricingType(strings.ToLower(strings.TrimSpace(s))) {
	case PricingFree:
		return PricingFree
	case PricingPaid:
		return PricingPaid
	default:
		return PricingFreemium
	}
}

// ToolStatus represents the catalog lifecycle state of a tool.
type ToolStatus string

const (
	ToolStatusNew      ToolStatus = "new_tool"
	ToolStatusVerified ToolStatus = "verified"
	ToolStatusTrending ToolStatus = "trending"
)

// Tool represents an AI tool in the catalog. Rows are created by the
// reconciler or by admin forms, mutated by counters and edits, and never
// deleted by the pipeline.
type Tool struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	Name        string      `gorm:"type:text;not null" json:"name"`
	Slug        string      `gorm:"type:text;not null;uniqueIndex:idx_tools_slug" json:"slug"`
	Description string      `gorm:"type:text" json:"description"`
	Category    string      `gorm:"type:text;index:idx_tools_category" json:"category"`
	PricingType PricingType `gorm:"type:text;default:freemium" json:"pricing_type"`
	WebsiteURL  string      `gorm:"type:text" json:"website_url"`
	Status      ToolStatus  `gorm:"type:text;index:idx_tools_status;default:new_tool" json:"status"`
	UseCases    StringArray `gorm:"type:text" json:"use_cases"`
	HuntCount   int64       `gorm:"default:0" json:"hunt_count"`
	ViewCount   int64       `gorm:"default:0" json:"view_count"`
	ClickCount  int64       `gorm:"default:0" json:"click_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Tool.
func (Tool) TableName() string {
	return "tools"
}

var slugInvalidRE = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL slug from a tool name: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed. Idempotent.
func GenerateSlug(name string) string {
	slug := slugInvalidRE.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
