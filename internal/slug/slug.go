// Package slug строит и разбирает SEO-ссылки проектов вида "<title>-<short id>".
package slug

import (
	"regexp"
	"strings"
)

const (
	// MaxTitleLen: предел заголовочной части слага.
	MaxTitleLen = 50
	// ShortIDLen: длина суффикса из идентификатора.
	ShortIDLen = 8
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Build детерминирован для пары (title, id). Длина не превышает
// MaxTitleLen + 1 + ShortIDLen символов.
func Build(title, id string) string {
	base := strings.ToLower(title)
	base = nonAlnum.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	// обрезка после trim: хвостовой дефис остаётся, как и "-<short>" для пустого заголовка
	if len(base) > MaxTitleLen {
		base = base[:MaxTitleLen]
	}
	return base + "-" + ShortID(id)
}

// ShortID берёт первые ShortIDLen символов идентификатора в нижнем регистре.
func ShortID(id string) string {
	id = strings.ToLower(id)
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// Suffix возвращает последний сегмент после дефиса.
func Suffix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.LastIndex(s, "-"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Path строит канонический путь страницы проекта.
func Path(title, id string) string {
	return "/projects/" + Build(title, id)
}
