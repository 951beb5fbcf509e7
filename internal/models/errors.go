package models

import "errors"

var (
	ErrNotFound           = errors.New("не найден")
	ErrForbidden          = errors.New("доступ запрещен")
	ErrAlreadyExists      = errors.New("уже существует")
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrInvalidToken       = errors.New("недействительный токен")
)
