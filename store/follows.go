package store

import (
	"time"

	"github.com/Luismorlan/postboard/model"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// FollowExists reports whether user already follows author.
func (s *Store) FollowExists(userID string, authorID string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, pkgerrors.Wrap(err, "failure when checking follow existence")
	}
	return count > 0, nil
}

// CreateFollow makes user follow author. The composite primary key serializes
// concurrent duplicate attempts at the DB level; the loser gets ErrConflict
// and no second row is ever created.
func (s *Store) CreateFollow(userID string, authorID string) error {
	follow := model.Follow{
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "failure when creating follow")
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// DeleteFollow removes the follow relation. Deleting an absent relation is a
// no-op, not an error.
func (s *Store) DeleteFollow(userID string, authorID string) error {
	err := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failure when deleting follow")
	}
	return nil
}
