package repository

import (
	"context"
	"errors"

	"github.com/toolhunt/toolhunt/internal/domain"
	"gorm.io/gorm"
)

// ToolRepository handles tool catalog data operations.
type ToolRepository struct {
	db *gorm.DB
}

// NewToolRepository creates a new ToolRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ToolRepository: repository instance bound to db.
func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// Create inserts a new tool record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tool: tool record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *ToolRepository) Create(ctx context.Context, tool *domain.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

// Update saves an existing tool record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tool: tool record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *ToolRepository) Update(ctx context.Context, tool *domain.Tool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

// GetByID retrieves a tool by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tool ID.
// Returns:
//   - *domain.Tool: tool record if found.
//   - error: domain.ErrNotFound if no row matches.
func (r *ToolRepository) GetByID(ctx context.Context, id string) (*domain.Tool, error) {
	var tool domain.Tool
	if err := r.db.WithContext(ctx).First(&tool, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tool, nil
}

// GetBySlug retrieves a tool by its URL slug.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - slug: tool slug.
// Returns:
//   - *domain.Tool: tool record if found.
//   - error: domain.ErrNotFound if no row matches.
func (r *ToolRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	var tool domain.Tool
	if err := r.db.WithContext(ctx).First(&tool, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tool, nil
}

// FindByNameInsensitive retrieves a tool by exact name, ignoring case.
// This is the reconciler's identity check, so "ChatGPT" and "chatgpt"
// resolve to the same row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: tool name as extracted by the model.
// Returns:
//   - *domain.Tool: matching tool if found, nil if no row matches.
//   - error: non-nil if the lookup fails.
func (r *ToolRepository) FindByNameInsensitive(ctx context.Context, name string) (*domain.Tool, error) {
	var tool domain.Tool
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&tool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

// List retrieves tools with optional filters and pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - category: category filter; empty means all.
//   - status: status filter; empty means all.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Tool: matching tool records, most hunted first.
//   - error: non-nil if the query fails.
func (r *ToolRepository) List(ctx context.Context, category string, status domain.ToolStatus, limit, offset int) ([]domain.Tool, error) {
	var tools []domain.Tool
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.
		Limit(limit).
		Offset(offset).
		Order("hunt_count DESC, created_at DESC").
		Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

// GetCategories retrieves all distinct tool categories.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: distinct category names.
//   - error: non-nil if the query fails.
func (r *ToolRepository) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&domain.Tool{}).
		Where("category != ''").
		Distinct("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// IncrementHuntCount atomically bumps a tool's hunt counter and returns the
// updated row. The increment runs server-side so concurrent hunts never
// lose updates.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tool ID.
// Returns:
//   - *domain.Tool: tool with the new counter value.
//   - error: domain.ErrNotFound if no row matches.
func (r *ToolRepository) IncrementHuntCount(ctx context.Context, id string) (*domain.Tool, error) {
	return r.adjustHuntCount(ctx, id, +1)
}

// DecrementHuntCount atomically lowers a tool's hunt counter, clamped at
// zero, and returns the updated row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tool ID.
// Returns:
//   - *domain.Tool: tool with the new counter value.
//   - error: domain.ErrNotFound if no row matches.
func (r *ToolRepository) DecrementHuntCount(ctx context.Context, id string) (*domain.Tool, error) {
	return r.adjustHuntCount(ctx, id, -1)
}

func (r *ToolRepository) adjustHuntCount(ctx context.Context, id string, delta int) (*domain.Tool, error) {
	expr := gorm.Expr("hunt_count + ?", delta)
	if delta < 0 {
		// Clamp at zero; CASE is portable across sqlite and postgres
		expr = gorm.Expr("CASE WHEN hunt_count + ? < 0 THEN 0 ELSE hunt_count + ? END", delta, delta)
	}
	result := r.db.WithContext(ctx).Model(&domain.Tool{}).
		Where("id = ?", id).
		UpdateColumn("hunt_count", expr)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// IncrementViewCount atomically bumps a tool's view counter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tool ID.
// Returns:
//   - error: non-nil if the update fails.
func (r *ToolRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Tool{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// IncrementClickCount atomically bumps a tool's outbound click counter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: tool ID.
// Returns:
//   - error: non-nil if the update fails.
func (r *ToolRepository) IncrementClickCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Tool{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
}
