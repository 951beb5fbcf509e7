package forms

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	allowedImageTypes = []string{"image/gif", "image/jpeg", "image/png", "image/webp", "image/bmp"}
)

// ValidationError maps form field names to their messages.
type ValidationError struct {
	Fields map[string][]string `json:"errors"`
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "ошибка валидации формы: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries form field errors and returns them.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

type cleaner interface {
	Clean()
}

type Validator struct {
	validate      *validator.Validate
	maxUploadSize int64
}

func NewValidator(maxUploadSize int64) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// both patterns are static, registration can't fail
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v, maxUploadSize: maxUploadSize}
}

// Validate cleans the form in place and checks it. The returned error is
// always a *ValidationError when the form itself is invalid.
func (v *Validator) Validate(form interface{}) error {
	if c, ok := form.(cleaner); ok {
		c.Clean()
	}

	result := &ValidationError{}

	if err := v.validate.Struct(form); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return fmt.Errorf("ошибка валидации формы: %w", err)
		}
		for _, fe := range fieldErrors {
			result.Add(fe.Field(), message(fe))
		}
	}

	if post, ok := form.(*PostForm); ok && post.Image != nil {
		if msg := v.checkImage(post.Image); msg != "" {
			result.Add("image", msg)
		}
	}

	if len(result.Fields) > 0 {
		return result
	}
	return nil
}

func (v *Validator) checkImage(u *Upload) string {
	if v.maxUploadSize > 0 && u.Size > v.maxUploadSize {
		return fmt.Sprintf("Файл слишком большой (макс. %d MB)", v.maxUploadSize/(1024*1024))
	}
	if u.File == nil {
		return "Файл не был отправлен."
	}

	mtype, err := mimetype.DetectReader(u.File)
	if _, seekErr := u.File.Seek(0, io.SeekStart); err != nil || seekErr != nil {
		return "Не удалось прочитать файл."
	}

	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			u.ContentType = mtype.String()
			u.Extension = mtype.Extension()
			return ""
		}
	}
	return "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "max":
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов.", fe.Param())
	case "min":
		return fmt.Sprintf("Убедитесь, что это значение содержит не менее %s символов.", fe.Param())
	case "email":
		return "Введите правильный адрес электронной почты."
	case "username":
		return "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	case "slug":
		return "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	case "gt":
		return "Выберите корректный вариант."
	}
	return "Некорректное значение."
}
