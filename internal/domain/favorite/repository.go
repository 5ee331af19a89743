package favorite

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository persists favorite relations. No other component writes them.
type Repository interface {
	Insert(ctx context.Context, postID, userID string) error
	DeleteMatching(ctx context.Context, postID, userID string) error
	PostIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert creates the relation. Duplicates are detected on write via the unique
// index rather than read-then-write, so concurrent favorites race safely.
func (r *repository) Insert(ctx context.Context, postID, userID string) error {
	fav := &Favorite{PostID: postID, UserID: userID}
	err := r.db.WithContext(ctx).Create(fav).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyFavorited
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyFavorited
	}
	// sqlite (modernc driver) reports the violation as a plain error string
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrAlreadyFavorited
	}
	return err
}

// DeleteMatching removes the relation for (postID, userID). Exactly one row is
// expected; more than one is a data-integrity fault, which is reported and
// repaired no further than deleting the first match.
func (r *repository) DeleteMatching(ctx context.Context, postID, userID string) error {
	var matches []Favorite
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Order("id ASC").
		Find(&matches).Error
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		return ErrNotFavorited
	}
	if len(matches) > 1 {
		log.Printf("integrity_fault kind=duplicate_favorite post_id=%s user_id=%s count=%d", postID, userID, len(matches))
	}

	return r.db.WithContext(ctx).Delete(&Favorite{}, matches[0].ID).Error
}

func (r *repository) PostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
