// Package uricomp кодирует компоненты URL так же, как это делает браузерный encodeURIComponent.
// url.QueryEscape для этого не подходит: он превращает пробел в "+", а ссылки на квиз ожидают "%20".
package uricomp

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode экранирует все байты UTF-8, кроме A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// Decode обратна Encode. Знак "+" остаётся плюсом.
func Decode(s string) (string, error) {
	return url.PathUnescape(s)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
