package repository

import (
	"Harbor/internal/model"
	"context"

	"gorm.io/gorm"
)

// PostRepo 帖子归属查询，表情通知需要定位帖子作者
type PostRepo interface {
	GetAuthorID(ctx context.Context, postID uint64) (uint64, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (s *postRepoImpl) GetAuthorID(ctx context.Context, postID uint64) (uint64, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Select("id, author_id").First(&post, postID).Error
	if err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}
