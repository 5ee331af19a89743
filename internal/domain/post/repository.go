package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRepository persists posts. Insert assigns the id; callers never
// choose ids outside test fixtures.
type ContentRepository interface {
	Insert(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	UpdateImageURL(ctx context.Context, id, imageURL string) error
	DeleteByID(ctx context.Context, id string) error
	FindOrdered(ctx context.Context, q Query) ([]Post, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Insert(ctx context.Context, p *Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *contentRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	result := r.db.WithContext(ctx).
		Model(&Post{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *contentRepository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// FindOrdered returns posts newest first, ties broken by id ascending so the
// order is deterministic. An explicitly empty id set returns no rows without
// touching the database: some backing stores reject empty-set membership
// predicates, so this is a required policy rather than an optimization.
func (r *contentRepository) FindOrdered(ctx context.Context, q Query) ([]Post, error) {
	if q.IDsSet && len(q.IDs) == 0 {
		return []Post{}, nil
	}

	query := r.db.WithContext(ctx).Order("created_at DESC, id ASC")
	if q.AuthorID != "" {
		query = query.Where("author_id = ?", q.AuthorID)
	}
	if q.IDsSet {
		query = query.Where("id IN ?", q.IDs)
	}

	posts := []Post{}
	if err := query.Find(&posts).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Post{}, nil
		}
		return nil, err
	}
	return posts, nil
}
