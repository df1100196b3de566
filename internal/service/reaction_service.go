package service

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/model"
	"Harbor/internal/pkg/consts"
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ReactionService 帖子表情服务接口定义
type ReactionService interface {
	React(ctx context.Context, userID uint64, req *dto.ReactReq) (*dto.ReactResultDTO, error)
	Reactions(ctx context.Context, userID, postID uint64) (*dto.ReactionsDTO, error)
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	postRepo     repository.PostRepo
	notification NotificationService
}

func NewReactionService(reactionRepo repository.ReactionRepo, postRepo repository.PostRepo, notification NotificationService) ReactionService {
	return &reactionServiceImpl{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		notification: notification,
	}
}

// React 表情开关语义：同类型再点取消，不同类型替换，首次添加
// 首次添加时给帖子作者派发通知，自己给自己的帖子表态不通知
func (s *reactionServiceImpl) React(ctx context.Context, userID uint64, req *dto.ReactReq) (*dto.ReactResultDTO, error) {
	if !consts.ValidReactionType(req.Type) {
		return nil, ErrReactionTypeInvalid
	}

	authorID, err := s.postRepo.GetAuthorID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	existing, err := s.reactionRepo.GetByPostAndUser(ctx, req.PostID, userID)
	if err == nil {
		if existing.Type == req.Type {
			if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
				return nil, err
			}
			return &dto.ReactResultDTO{Action: "removed"}, nil
		}
		if err := s.reactionRepo.UpdateType(ctx, existing.ID, req.Type); err != nil {
			return nil, err
		}
		return &dto.ReactResultDTO{Action: "replaced", Type: req.Type}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reaction := &model.Reaction{
		PostID: req.PostID,
		UserID: userID,
		Type:   req.Type,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrActionDuplicate
		}
		return nil, err
	}

	if err := s.notification.Dispatch(ctx, &mongoPkg.Notification{
		RecipientID: authorID,
		SenderID:    userID,
		Type:        mongoPkg.NotifyReact,
		About:       mongoPkg.About{Kind: "Post", ID: fmt.Sprintf("%d", req.PostID)},
		Message:     fmt.Sprintf("对你的帖子做出了 %s 反应", req.Type),
	}); err != nil {
		return nil, err
	}

	return &dto.ReactResultDTO{Action: "added", Type: req.Type}, nil
}

// Reactions 帖子表情统计，附带当前用户的表态
func (s *reactionServiceImpl) Reactions(ctx context.Context, userID, postID uint64) (*dto.ReactionsDTO, error) {
	if _, err := s.postRepo.GetAuthorID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	groups, err := s.reactionRepo.GroupByType(ctx, postID)
	if err != nil {
		return nil, err
	}

	res := &dto.ReactionsDTO{
		PostID: postID,
		Groups: make([]*dto.ReactionGroupDTO, 0, len(groups)),
	}
	for _, g := range groups {
		userIDs, err := s.reactionRepo.ListUserIDsByType(ctx, postID, g.Type)
		if err != nil {
			return nil, err
		}
		res.Groups = append(res.Groups, &dto.ReactionGroupDTO{Type: g.Type, Count: g.Count, UserIDs: userIDs})
	}

	mine, err := s.reactionRepo.GetByPostAndUser(ctx, postID, userID)
	if err == nil {
		res.Mine = mine.Type
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return res, nil
}
