package service

import (
	"context"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/repository"
	"github.com/LogM3/Poster/internal/storage"
)

// postLister builds paginated post listings and fills display-only fields.
// Shared by the index, group, profile and follow feed pages.
type postLister struct {
	postRepo repository.PostRepository
	store    storage.Storage
	perPage  int
}

func newPostLister(postRepo repository.PostRepository, store storage.Storage, perPage int) *postLister {
	if perPage < 1 {
		perPage = paginator.DefaultPerPage
	}
	return &postLister{postRepo: postRepo, store: store, perPage: perPage}
}

func (l *postLister) page(ctx context.Context, filter repository.PostFilter, rawPage string) (*paginator.Page[models.Post], error) {
	count, err := l.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	p := paginator.New(count, l.perPage)
	number := p.Number(rawPage)

	var posts []models.Post
	if count > 0 {
		limit, offset := p.Window(number)
		posts, err = l.postRepo.List(ctx, filter, limit, offset)
		if err != nil {
			return nil, err
		}
	}

	for i := range posts {
		l.decorate(ctx, &posts[i])
	}

	return paginator.NewPage(p, number, posts), nil
}

// decorate fills the fields that are not stored: the presigned image link and
// the humanized publication age.
func (l *postLister) decorate(ctx context.Context, post *models.Post) {
	post.Published = humanize.Time(post.PubDate)

	if post.Image == "" || l.store == nil {
		return
	}

	imageURL, err := l.store.GetImageURL(ctx, post.Image)
	if err != nil {
		log.Printf("Предупреждение: не удалось получить ссылку на изображение %s: %v", post.Image, err)
		return
	}
	post.ImageURL = imageURL
}

func (l *postLister) upload(ctx context.Context, post *models.Post, image *forms.Upload) error {
	if l.store == nil {
		return fmt.Errorf("хранилище изображений не настроено")
	}

	objectName, err := l.store.UploadImage(ctx, image.Filename, image.Extension, image.ContentType, image.File, image.Size)
	if err != nil {
		return fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	post.Image = objectName
	return nil
}

// removeImage deletes an object that is no longer referenced. Failures only
// leave an orphan in the bucket, so they are logged and swallowed.
func removeImage(ctx context.Context, store storage.Storage, objectName string) {
	if objectName == "" || store == nil {
		return
	}

	if err := store.DeleteImage(ctx, objectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить из MinIO %s: %v", objectName, err)
	}
}
