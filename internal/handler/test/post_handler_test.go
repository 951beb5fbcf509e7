package test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/service"
)

func makePage(n int) *paginator.Page[models.Post] {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{ID: int64(n - i), Text: fmt.Sprintf("пост %d", n-i), AuthorUsername: "leo", PubDate: time.Now()}
	}
	return paginator.NewPage(paginator.New(n, 10), 1, posts)
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndex(t *testing.T) {
	t.Run("Страница отдается из кеша", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Index", mock.Anything, "").Return(makePage(3), nil).Once()

		first := env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
		second := env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		env.posts.AssertNumberOfCalls(t, "Index", 1)

		page := decodeBody(t, first)["page_obj"].(map[string]interface{})
		assert.Len(t, page["items"], 3)
	})

	t.Run("После сброса кеша страница строится заново", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Index", mock.Anything, "").Return(makePage(1), nil).Twice()

		env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")
		env.pages.Purge()
		env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")

		env.posts.AssertNumberOfCalls(t, "Index", 2)
	})

	t.Run("Страница, собранная до сброса, не кешируется", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Index", mock.Anything, "").
			Run(func(mock.Arguments) { env.pages.Purge() }).
			Return(makePage(1), nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/", nil), "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 0, env.pages.Len())
	})

	t.Run("Номер страницы передается сервису", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Index", mock.Anything, "2").Return(makePage(1), nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/?page=2", nil), "")

		assert.Equal(t, http.StatusOK, rr.Code)
		env.posts.AssertExpectations(t)
	})
}

func TestGroupPosts(t *testing.T) {
	tests := []struct {
		name           string
		result         *service.GroupPage
		err            error
		expectedStatus int
	}{
		{
			name:           "Существующая группа",
			result:         &service.GroupPage{Group: &models.Group{ID: 1, Title: "Кошки", Slug: "cats"}, PageObj: makePage(2)},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Неизвестная группа",
			err:            fmt.Errorf("группа cats %w", models.ErrNotFound),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			if tt.result != nil {
				env.posts.On("GroupPosts", mock.Anything, "cats", "").Return(tt.result, nil)
			} else {
				env.posts.On("GroupPosts", mock.Anything, "cats", "").Return(nil, tt.err)
			}

			rr := env.do(httptest.NewRequest(http.MethodGet, "/group/cats/", nil), "")

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, rr)
				assert.Contains(t, body, "group")
				assert.Contains(t, body, "page_obj")
			}
		})
	}
}

func TestProfile(t *testing.T) {
	t.Run("Аноним", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Profile", mock.Anything, (*models.Actor)(nil), "leo", "").
			Return(&service.ProfilePage{Author: &models.User{Username: "leo"}, PageObj: makePage(1)}, nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/profile/leo/", nil), "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, false, decodeBody(t, rr)["following"])
	})

	t.Run("Подписчик", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Profile", mock.Anything, anna, "leo", "").
			Return(&service.ProfilePage{Author: &models.User{Username: "leo"}, Following: true, PageObj: makePage(1)}, nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/profile/leo/", nil), "anna-token")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, decodeBody(t, rr)["following"])
	})
}

func TestPostDetail(t *testing.T) {
	t.Run("Пост с комментариями и формой", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Detail", mock.Anything, int64(3)).Return(&service.PostDetail{
			Post:       &models.Post{ID: 3, Text: "текст"},
			PostsCount: 1,
			Comments:   []models.Comment{{ID: 1, Text: "коммент"}},
		}, nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/3/", nil), "")

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Contains(t, body, "post")
		assert.Len(t, body["comments"], 1)
		assert.Len(t, body["form"], len(forms.CommentFields))
	})

	t.Run("Нечисловой идентификатор", func(t *testing.T) {
		env := newTestEnv()

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/abc/", nil), "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		env.posts.AssertNotCalled(t, "Detail", mock.Anything, mock.Anything)
	})

	t.Run("Несуществующий пост", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("Detail", mock.Anything, int64(99)).Return(nil, models.ErrNotFound)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/99/", nil), "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "/posts/99/", decodeBody(t, rr)["path"])
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("Пустая форма", func(t *testing.T) {
		env := newTestEnv()
		env.groups.On("List", mock.Anything).Return([]models.Group{{ID: 1, Title: "Кошки", Slug: "cats"}}, nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/create/", nil), "leo-token")

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["is_edit"])
		assert.Len(t, body["groups"], 1)
		assert.Len(t, body["form"], len(forms.PostFields))
	})

	t.Run("Создание поста перенаправляет в профиль", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("CreatePost", mock.Anything, leo, mock.MatchedBy(func(f *forms.PostForm) bool {
			return f.Text == "Новый пост" && f.Group != nil && *f.Group == 3 && f.Image == nil
		})).Return(&models.Post{ID: 10, AuthorUsername: "leo"}, nil)

		req := formRequest(http.MethodPost, "/create/", url.Values{"text": {"Новый пост"}, "group": {"3"}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
		env.posts.AssertExpectations(t)
	})

	t.Run("Пост без группы", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("CreatePost", mock.Anything, leo, mock.MatchedBy(func(f *forms.PostForm) bool {
			return f.Group == nil
		})).Return(&models.Post{ID: 11, AuthorUsername: "leo"}, nil)

		req := formRequest(http.MethodPost, "/create/", url.Values{"text": {"без группы"}, "group": {""}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusFound, rr.Code)
	})

	t.Run("Пустой текст возвращает ошибки формы", func(t *testing.T) {
		env := newTestEnv()
		verr := &forms.ValidationError{}
		verr.Add("text", "Обязательное поле.")
		env.posts.On("CreatePost", mock.Anything, leo, mock.Anything).Return(nil, verr)

		req := formRequest(http.MethodPost, "/create/", url.Values{"text": {""}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errs := decodeBody(t, rr)["errors"].(map[string]interface{})
		assert.Contains(t, errs, "text")
	})

	t.Run("Некорректная группа", func(t *testing.T) {
		env := newTestEnv()

		req := formRequest(http.MethodPost, "/create/", url.Values{"text": {"текст"}, "group": {"abc"}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errs := decodeBody(t, rr)["errors"].(map[string]interface{})
		assert.Equal(t, []interface{}{forms.InvalidChoice}, errs["group"])
		env.posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Пост с картинкой", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("CreatePost", mock.Anything, leo, mock.MatchedBy(func(f *forms.PostForm) bool {
			return f.Image != nil && f.Image.Filename == "small.gif" && f.Image.Size > 0
		})).Return(&models.Post{ID: 12, AuthorUsername: "leo"}, nil)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("text", "с картинкой"))
		part, err := writer.CreateFormFile("image", "small.gif")
		require.NoError(t, err)
		_, err = part.Write([]byte("GIF89a"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/create/", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		env.posts.AssertExpectations(t)
	})

	t.Run("JSON тело", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("CreatePost", mock.Anything, leo, mock.MatchedBy(func(f *forms.PostForm) bool {
			return f.Text == "из json" && f.Group != nil && *f.Group == 2
		})).Return(&models.Post{ID: 13, AuthorUsername: "leo"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(`{"text":"из json","group":2}`))
		req.Header.Set("Content-Type", "application/json")
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusFound, rr.Code)
	})
}

func TestEditPost(t *testing.T) {
	post := &models.Post{ID: 7, Text: "старый", AuthorID: "u-leo", AuthorUsername: "leo"}

	t.Run("Автор получает заполненную форму", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("PostForEdit", mock.Anything, leo, int64(7)).Return(post, nil)
		env.groups.On("List", mock.Anything).Return([]models.Group{}, nil)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/7/edit/", nil), "leo-token")

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, true, body["is_edit"])
		assert.Contains(t, body, "post")
	})

	t.Run("Не автор перенаправляется на пост", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("PostForEdit", mock.Anything, anna, int64(7)).
			Return(post, fmt.Errorf("редактировать пост может только автор: %w", models.ErrForbidden))

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/7/edit/", nil), "anna-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/7/", rr.Header().Get("Location"))
	})

	t.Run("Не автор отправляет форму", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("EditPost", mock.Anything, anna, int64(7), mock.Anything).Return(post, models.ErrForbidden)

		req := formRequest(http.MethodPost, "/posts/7/edit/", url.Values{"text": {"чужой"}})
		rr := env.do(req, "anna-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/7/", rr.Header().Get("Location"))
	})

	t.Run("Не автор отправляет некорректную форму", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("PostForEdit", mock.Anything, anna, int64(7)).Return(post, models.ErrForbidden)

		req := formRequest(http.MethodPost, "/posts/7/edit/", url.Values{"text": {"x"}, "group": {"abc"}})
		rr := env.do(req, "anna-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/7/", rr.Header().Get("Location"))
		env.posts.AssertNotCalled(t, "EditPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Автор отправляет некорректную форму", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("PostForEdit", mock.Anything, leo, int64(7)).Return(post, nil)

		req := formRequest(http.MethodPost, "/posts/7/edit/", url.Values{"text": {"x"}, "group": {"abc"}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "group")
	})

	t.Run("Автор сохраняет и снимает картинку", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("EditPost", mock.Anything, leo, int64(7), mock.MatchedBy(func(f *forms.PostForm) bool {
			return f.Text == "новый" && f.ImageClear
		})).Return(&models.Post{ID: 7, Text: "новый"}, nil)

		req := formRequest(http.MethodPost, "/posts/7/edit/", url.Values{"text": {"новый"}, "image-clear": {"on"}})
		rr := env.do(req, "leo-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/7/", rr.Header().Get("Location"))
		env.posts.AssertExpectations(t)
	})

	t.Run("Несуществующий пост", func(t *testing.T) {
		env := newTestEnv()
		env.posts.On("PostForEdit", mock.Anything, leo, int64(404)).Return(nil, models.ErrNotFound)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/posts/404/edit/", nil), "leo-token")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeletePost(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		actor          *models.Actor
		err            error
		expectedStatus int
		location       string
	}{
		{name: "Автор удаляет пост", token: "leo-token", actor: leo, expectedStatus: http.StatusFound, location: "/profile/leo/"},
		{name: "Администратор удаляет пост", token: "root-token", actor: root, expectedStatus: http.StatusFound, location: "/profile/leo/"},
		{name: "Чужой пост", token: "anna-token", actor: anna, err: models.ErrForbidden, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.posts.On("DeletePost", mock.Anything, tt.actor, int64(7)).
				Return(&models.Post{ID: 7, AuthorUsername: "leo"}, tt.err)

			rr := env.do(httptest.NewRequest(http.MethodPost, "/posts/7/delete/", nil), tt.token)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.location, rr.Header().Get("Location"))
		})
	}
}

func TestAddComment(t *testing.T) {
	t.Run("Комментарий перенаправляет на пост", func(t *testing.T) {
		env := newTestEnv()
		env.comments.On("AddComment", mock.Anything, anna, int64(3), &forms.CommentForm{Text: "Отлично"}).
			Return(&models.Comment{ID: 1, PostID: 3, Text: "Отлично"}, nil)

		req := formRequest(http.MethodPost, "/posts/3/comment/", url.Values{"text": {"Отлично"}})
		rr := env.do(req, "anna-token")

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/posts/3/", rr.Header().Get("Location"))
	})

	t.Run("Пустой комментарий", func(t *testing.T) {
		env := newTestEnv()
		verr := &forms.ValidationError{}
		verr.Add("text", "Обязательное поле.")
		env.comments.On("AddComment", mock.Anything, anna, int64(3), mock.Anything).Return(nil, verr)

		req := formRequest(http.MethodPost, "/posts/3/comment/", url.Values{"text": {"  "}})
		rr := env.do(req, "anna-token")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Комментарий к несуществующему посту", func(t *testing.T) {
		env := newTestEnv()
		env.comments.On("AddComment", mock.Anything, anna, int64(9), mock.Anything).Return(nil, models.ErrNotFound)

		req := formRequest(http.MethodPost, "/posts/9/comment/", url.Values{"text": {"текст"}})
		rr := env.do(req, "anna-token")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
