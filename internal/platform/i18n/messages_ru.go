// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// russian maps English message keys to their Russian rendering.
var russian = map[string]string{
	// Access
	"Authentication credentials were not provided.":      "Учетные данные не были предоставлены.",
	"You do not have permission to perform this action.": "У вас недостаточно прав для выполнения этого действия.",
	"Invalid authorization format":                       "Неверный формат заголовка авторизации",
	"Invalid or expired token":                           "Токен недействителен или истек",

	// Signup
	"The username \"me\" is reserved.":                           "Имя пользователя \"me\" зарезервировано.",
	"Invalid confirmation code.":                                 "Неверный код подтверждения.",
	"This username or email is already taken.":                   "Это имя пользователя или email уже заняты.",
	"The confirmation email could not be sent. Try again later.": "Не удалось отправить письмо с кодом. Повторите позже.",

	// Catalog and reviews
	"You have already reviewed this title.":              "Вы уже оставили отзыв на это произведение.",
	"Title year cannot be in the future":                 "Год выпуска не может быть больше текущего",
	"A category with this slug already exists.":          "Категория с таким slug уже существует.",
	"A genre with this slug already exists.":             "Жанр с таким slug уже существует.",
	"A user with this username or email already exists.": "Пользователь с таким именем или email уже существует.",

	// Generic
	"%s not found":                         "Объект %s не найден",
	"Validation failed":                    "Ошибка валидации",
	"Invalid JSON payload":                 "Некорректный JSON",
	"An unexpected error occurred":         "Произошла непредвиденная ошибка",
	"Method %q not allowed":                "Метод %q не разрешен",
	"Too many requests. Try again in %ds.": "Слишком много запросов. Повторите через %d с.",
	"Service is not ready":                 "Сервис не готов",
}

func init() {
	for key, translation := range russian {
		if err := message.SetString(language.Russian, key, translation); err != nil {
			panic("i18n: register " + key + ": " + err.Error())
		}
	}
}
