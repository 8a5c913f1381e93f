// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-vaultx/internal/generator"
	"github.com/MKhiriev/go-vaultx/internal/identity"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/internal/validators"
)

var validationMessages = []struct {
	err     error
	message string
}{
	{validators.ErrEmptyTitle, "Название обязательно"},
	{validators.ErrEmptyUsername, "Логин обязателен"},
	{validators.ErrEmptyPassword, "Пароль обязателен"},
	{validators.ErrEmptyName, "Имя обязательно"},
	{validators.ErrEmptyEmail, "Email обязателен"},
	{validators.ErrInvalidEmail, "Некорректный email"},
	{validators.ErrEmptyUserPass, "Пароль аккаунта обязателен"},
}

var identityMessages = []struct {
	err     error
	message string
}{
	{identity.ErrMissingFields, "Заполните все обязательные поля"},
	{identity.ErrUserAlreadyExists, "Пользователь уже существует"},
	{identity.ErrUserNotFound, "Пользователь не найден"},
	{identity.ErrWrongPassword, "Неверный пароль"},
	{identity.ErrTokenRejected, "Сессия истекла, войдите снова"},
}

// humanizeError turns errors of the client layers into a message for the
// status line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		for _, v := range validationMessages {
			if errors.Is(validationErr.Err, v.err) {
				return v.message
			}
		}
		return "Некорректное поле: " + validationErr.Field
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return "Запись не найдена"
	}

	for _, v := range identityMessages {
		if errors.Is(err, v.err) {
			return v.message
		}
	}

	switch {
	case errors.Is(err, service.ErrSessionClosed), errors.Is(err, service.ErrNoActiveSession):
		return "Хранилище закрыто, войдите снова"
	case errors.Is(err, generator.ErrEmptyCharset), errors.Is(err, generator.ErrInvalidLength):
		return "Не удалось сгенерировать пароль: " + err.Error()
	}

	var persistErr *store.PersistenceError
	if errors.As(err, &persistErr) {
		return "Ошибка хранилища, изменения не сохранены"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или сервер недоступен"
	}

	return err.Error()
}
