package service

import (
	"errors"

	"socialnet/internal/apperror"
	"socialnet/internal/config"
	"socialnet/internal/repository"
	"socialnet/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Query   QueryService
	Comment CommentService
	Like    LikeService
}

func NewService(rep *repository.Repository, cfg *config.Config, media storage.MediaStore) *Service {
	return &Service{
		Auth:    NewAuthService(rep.Users, cfg),
		User:    NewUserService(rep.Users, rep.Follows, rep.Stats),
		Post:    NewPostService(rep.Posts, media),
		Query:   NewQueryService(rep.Posts, rep.Stats),
		Comment: NewCommentService(rep.Comments, rep.Posts),
		Like:    NewLikeService(rep.Likes, rep.Posts),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrNotFound)
}
