package store

import (
	"errors"
	"time"

	"github.com/Luismorlan/postboard/model"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// postOrder is the default feed ordering: newest publication first. Id breaks
// the (unlikely) tie of two posts sharing a timestamp so the order stays
// stable across queries.
const postOrder = "pub_date DESC, id DESC"

func (s *Store) postQuery() *gorm.DB {
	return s.db.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Order(postOrder)
}

// ListAllPosts returns every post, newest first.
func (s *Store) ListAllPosts() ([]model.Post, error) {
	var posts []model.Post
	if err := s.postQuery().Find(&posts).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when listing all posts")
	}
	return posts, nil
}

// ListPostsByGroup returns the group with the given slug and its posts,
// newest first. ErrNotFound if no group has that slug.
func (s *Store) ListPostsByGroup(slug string) (*model.Group, []model.Post, error) {
	group, err := s.GetGroupBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	var posts []model.Post
	if err := s.postQuery().Where("group_id = ?", group.Id).Find(&posts).Error; err != nil {
		return nil, nil, pkgerrors.Wrap(err, "failure when listing posts for group "+slug)
	}
	return group, posts, nil
}

// ListPostsByAuthor returns the named user and their posts, newest first.
// ErrNotFound if no such user.
func (s *Store) ListPostsByAuthor(username string) (*model.User, []model.Post, error) {
	author, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	var posts []model.Post
	if err := s.postQuery().Where("author_id = ?", author.Id).Find(&posts).Error; err != nil {
		return nil, nil, pkgerrors.Wrap(err, "failure when listing posts for author "+username)
	}
	return author, posts, nil
}

// ListPostsByFollowedAuthors returns posts whose author is followed by the
// given user, newest first. An empty follow list yields an empty result.
func (s *Store) ListPostsByFollowedAuthors(userID string) ([]model.Post, error) {
	var posts []model.Post
	err := s.postQuery().
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Find(&posts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failure when listing followed posts for user "+userID)
	}
	return posts, nil
}

// CountPostsByAuthor returns the author's total post count, shown on the
// profile and post detail pages.
func (s *Store) CountPostsByAuthor(authorID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetPost fetches a post by id AND author username. The id alone is not
// enough: a post id must match its claimed owner or the lookup is ErrNotFound.
func (s *Store) GetPost(username string, postID string) (*model.Post, error) {
	var post model.Post
	res := s.db.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", postID, username).
		First(&post)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &post, nil
}

// GetPostByID fetches a post by id alone, used by the API item endpoint where
// the route carries no username.
func (s *Store) GetPostByID(postID string) (*model.Post, error) {
	var post model.Post
	res := s.db.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Where("id = ?", postID).
		First(&post)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &post, nil
}

// CreatePost publishes a new post owned by the given author. PubDate is set
// here, once, and never updated afterwards.
func (s *Store) CreatePost(authorID string, text string, groupID *string, imageKey string) (*model.Post, error) {
	if text == "" {
		return nil, ErrValidation
	}
	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		AuthorID:  authorID,
		GroupID:   groupID,
		Text:      text,
		PubDate:   time.Now(),
		ImageKey:  imageKey,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failure when creating post")
	}
	return s.GetPostByID(post.Id)
}

// UpdatePost sets the mutable fields (text, group, image) to the given
// values. AuthorID and PubDate are immutable and deliberately absent from the
// update column set. The passed post is refreshed in place.
func (s *Store) UpdatePost(post *model.Post, text string, groupID *string, imageKey string) error {
	if text == "" {
		return ErrValidation
	}
	err := s.db.Model(&model.Post{}).
		Where("id = ?", post.Id).
		Updates(map[string]interface{}{
			"text":      text,
			"group_id":  groupID,
			"image_key": imageKey,
		}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failure when updating post "+post.Id)
	}
	updated, err := s.GetPostByID(post.Id)
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

// DeletePost removes the post and, explicitly and in the same transaction,
// all of its comments. The cascade lives here rather than in a DB constraint
// so the deletion order is visible and testable.
func (s *Store) DeletePost(post *model.Post) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.Id).Delete(&model.Comment{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failure when deleting comments of post "+post.Id)
		}
		if err := tx.Where("id = ?", post.Id).Delete(&model.Post{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failure when deleting post "+post.Id)
		}
		return nil
	})
}
