package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/storage"
)

// PostService drives the post lifecycle and the media objects tied to it.
type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, ownerID string) error
	RecoverPost(ctx context.Context, postID, ownerID string) (*models.Post, error)
	DeletePostPermanently(ctx context.Context, postID, ownerID string) error
	SweepPublish(ctx context.Context, now time.Time) (int, error)
}

type CreatePostRequest struct {
	OwnerID         string
	Content         string
	MediaPath       string
	CommentsEnabled bool
	ScheduledAt     *time.Time
}

// UpdatePostRequest is a partial update; nil fields and an empty MediaPath
// leave the stored values untouched.
type UpdatePostRequest struct {
	PostID          string
	OwnerID         string
	Content         *string
	CommentsEnabled *bool
	ScheduledAt     *time.Time
	MediaPath       string
}

type postService struct {
	postRepo repository.PostRepository
	media    storage.MediaStore
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository, media storage.MediaStore) PostService {
	return &postService{
		postRepo: postRepo,
		media:    media,
		now:      time.Now,
	}
}

func isPublishedAt(scheduledAt *time.Time, now time.Time) bool {
	return scheduledAt == nil || !scheduledAt.After(now)
}

// storeMedia uploads a local file. Validation errors pass through, anything
// else is reported as an upstream failure.
func (s *postService) storeMedia(ctx context.Context, localPath string) (*string, error) {
	if localPath == "" {
		return nil, nil
	}

	ref, err := s.media.Store(ctx, localPath)
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			return nil, err
		}
		return nil, apperror.Upstream("store media", err)
	}

	return &ref.URL, nil
}

func (s *postService) discardMedia(ctx context.Context, mediaURL *string, reason string) {
	if mediaURL == nil || *mediaURL == "" {
		return
	}
	if !s.media.Discard(ctx, *mediaURL) {
		log.Printf("Warning: media %s left in store after %s", *mediaURL, reason)
	}
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("content is required")
	}

	mediaURL, err := s.storeMedia(ctx, req.MediaPath)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		UserID:          req.OwnerID,
		Content:         req.Content,
		MediaURL:        mediaURL,
		CommentsEnabled: req.CommentsEnabled,
		ScheduledAt:     req.ScheduledAt,
		IsPublished:     isPublishedAt(req.ScheduledAt, now),
		CreatedAt:       now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.discardMedia(ctx, mediaURL, "failed insert")
		return nil, err
	}

	log.Printf("User %s created post %s (published=%t)", post.UserID, post.PostID, post.IsPublished)
	return post, nil
}

// UpdatePost stores any new media first and discards the previous object only
// once the row holds the new reference. When no owned row matched the new
// object is discarded again. Other failures keep it, since the row may
// already reference it.
func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, apperror.Validation("content cannot be empty")
	}

	newMedia, err := s.storeMedia(ctx, req.MediaPath)
	if err != nil {
		return nil, err
	}

	updated, err := s.postRepo.Update(ctx, req.PostID, req.OwnerID, repository.PostPatch{
		Content:         req.Content,
		MediaURL:        newMedia,
		CommentsEnabled: req.CommentsEnabled,
		ScheduledAt:     req.ScheduledAt,
	}, s.now())
	if err != nil {
		if isNotFound(err) {
			s.discardMedia(ctx, newMedia, "rejected update")
		} else if newMedia != nil {
			log.Printf("Warning: media %s kept after failed update of post %s: %v", *newMedia, req.PostID, err)
		}
		return nil, err
	}

	if newMedia != nil && updated.PreviousMediaURL != nil && *updated.PreviousMediaURL != *newMedia {
		s.discardMedia(ctx, updated.PreviousMediaURL, "media replacement")
	}

	return &updated.Post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, ownerID string) error {
	if err := s.postRepo.SoftDelete(ctx, postID, ownerID); err != nil {
		return err
	}

	log.Printf("User %s moved post %s to trash", ownerID, postID)
	return nil
}

func (s *postService) RecoverPost(ctx context.Context, postID, ownerID string) (*models.Post, error) {
	post, err := s.postRepo.Recover(ctx, postID, ownerID, s.now())
	if err != nil {
		return nil, err
	}

	log.Printf("User %s recovered post %s", ownerID, postID)
	return post, nil
}

func (s *postService) DeletePostPermanently(ctx context.Context, postID, ownerID string) error {
	mediaURL, err := s.postRepo.DeletePermanently(ctx, postID, ownerID)
	if err != nil {
		return err
	}

	s.discardMedia(ctx, mediaURL, "permanent delete")

	log.Printf("User %s permanently deleted post %s", ownerID, postID)
	return nil
}

// SweepPublish promotes every scheduled post that is due at now.
func (s *postService) SweepPublish(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.postRepo.PublishDue(ctx, now)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		log.Printf("Published scheduled post %s", id)
	}
	return len(ids), nil
}
