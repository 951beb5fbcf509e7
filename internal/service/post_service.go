package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LogM3/Poster/internal/cache"
	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/repository"
)

type GroupPage struct {
	Group   *models.Group                 `json:"group"`
	PageObj *paginator.Page[models.Post] `json:"page_obj"`
}

type ProfilePage struct {
	Author         *models.User                 `json:"author"`
	FullName       string                       `json:"fullName"`
	PostsCount     int                          `json:"postsCount"`
	FollowersCount int                          `json:"followersCount"`
	FollowingCount int                          `json:"followingCount"`
	Following      bool                         `json:"following"`
	PageObj        *paginator.Page[models.Post] `json:"page_obj"`
}

type PostDetail struct {
	Post       *models.Post     `json:"post"`
	PostsCount int              `json:"postsCount"`
	Comments   []models.Comment `json:"comments"`
}

type PostService interface {
	Index(ctx context.Context, rawPage string) (*paginator.Page[models.Post], error)
	GroupPosts(ctx context.Context, slug, rawPage string) (*GroupPage, error)
	Profile(ctx context.Context, actor *models.Actor, username, rawPage string) (*ProfilePage, error)
	Detail(ctx context.Context, postID int64) (*PostDetail, error)
	PostForEdit(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, actor *models.Actor, form *forms.PostForm) (*models.Post, error)
	EditPost(ctx context.Context, actor *models.Actor, postID int64, form *forms.PostForm) (*models.Post, error)
	DeletePost(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	posts       *postLister
	validator   *forms.Validator
	pages       *cache.PageCache
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	posts *postLister,
	validator *forms.Validator,
	pages *cache.PageCache,
) PostService {
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		posts:       posts,
		validator:   validator,
		pages:       pages,
	}
}

func (p *postService) Index(ctx context.Context, rawPage string) (*paginator.Page[models.Post], error) {
	return p.posts.page(ctx, repository.PostFilter{}, rawPage)
}

func (p *postService) GroupPosts(ctx context.Context, slug, rawPage string) (*GroupPage, error) {
	group, err := p.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	page, err := p.posts.page(ctx, repository.PostFilter{GroupID: &group.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	return &GroupPage{Group: group, PageObj: page}, nil
}

func (p *postService) Profile(ctx context.Context, actor *models.Actor, username, rawPage string) (*ProfilePage, error) {
	author, err := p.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := p.posts.page(ctx, repository.PostFilter{AuthorID: &author.UserID}, rawPage)
	if err != nil {
		return nil, err
	}

	profile := &ProfilePage{
		Author:     author,
		FullName:   author.FullName(),
		PostsCount: page.Count,
		PageObj:    page,
	}

	if profile.FollowersCount, err = p.followRepo.CountFollowers(ctx, author.UserID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = p.followRepo.CountFollowing(ctx, author.UserID); err != nil {
		return nil, err
	}

	if actor != nil && actor.UserID != author.UserID {
		profile.Following, err = p.followRepo.Exists(ctx, actor.UserID, author.UserID)
		if err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func (p *postService) Detail(ctx context.Context, postID int64) (*PostDetail, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	p.posts.decorate(ctx, post)

	postsCount, err := p.postRepo.Count(ctx, repository.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	decorateComments(comments)

	return &PostDetail{Post: post, PostsCount: postsCount, Comments: comments}, nil
}

// PostForEdit returns the post together with ErrForbidden when the actor is
// not its author, so the caller still knows where to redirect.
func (p *postService) PostForEdit(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !isAuthor(actor, post) {
		return post, fmt.Errorf("редактировать пост может только автор: %w", models.ErrForbidden)
	}

	p.posts.decorate(ctx, post)
	return post, nil
}

func (p *postService) CreatePost(ctx context.Context, actor *models.Actor, form *forms.PostForm) (*models.Post, error) {
	if actor == nil {
		return nil, fmt.Errorf("создавать посты могут только авторизованные пользователи: %w", models.ErrForbidden)
	}

	if err := p.validate(ctx, form); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:           form.Text,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		GroupID:        form.Group,
	}

	if form.Image != nil {
		if err := p.posts.upload(ctx, post, form.Image); err != nil {
			return nil, err
		}
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		removeImage(ctx, p.posts.store, post.Image)
		return nil, err
	}

	p.pages.Purge()
	p.posts.decorate(ctx, post)

	return post, nil
}

// EditPost changes text, group and image in place. A non-author gets the
// untouched post back with ErrForbidden.
func (p *postService) EditPost(ctx context.Context, actor *models.Actor, postID int64, form *forms.PostForm) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !isAuthor(actor, post) {
		return post, fmt.Errorf("редактировать пост может только автор: %w", models.ErrForbidden)
	}

	if err := p.validate(ctx, form); err != nil {
		return nil, err
	}

	oldImage := post.Image
	post.Text = form.Text
	post.GroupID = form.Group

	switch {
	case form.Image != nil:
		if err := p.posts.upload(ctx, post, form.Image); err != nil {
			return nil, err
		}
	case form.ImageClear:
		post.Image = ""
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			removeImage(ctx, p.posts.store, post.Image)
		}
		return nil, err
	}

	if oldImage != post.Image {
		removeImage(ctx, p.posts.store, oldImage)
	}
	p.pages.Purge()

	updated, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	p.posts.decorate(ctx, updated)

	return updated, nil
}

func (p *postService) DeletePost(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !isAuthor(actor, post) && !actor.IsAdmin() {
		return post, fmt.Errorf("удалить пост может только автор: %w", models.ErrForbidden)
	}

	image, err := p.postRepo.Delete(ctx, postID)
	if err != nil {
		return nil, err
	}

	removeImage(ctx, p.posts.store, image)
	p.pages.Purge()

	return post, nil
}

// validate runs the form checks and makes sure the chosen group exists.
func (p *postService) validate(ctx context.Context, form *forms.PostForm) error {
	if err := p.validator.Validate(form); err != nil {
		return err
	}

	if form.Group == nil {
		return nil
	}

	if _, err := p.groupRepo.GetByID(ctx, *form.Group); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			verr := &forms.ValidationError{}
			verr.Add("group", forms.InvalidChoice)
			return verr
		}
		return err
	}

	return nil
}

func isAuthor(actor *models.Actor, post *models.Post) bool {
	return actor != nil && actor.UserID == post.AuthorID
}
