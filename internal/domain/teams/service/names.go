package service

import (
	"fmt"
	"strings"
)

// Способы именования команд
const (
	NamingLetters = "letters"
	NamingNumbers = "numbers"
	NamingColors  = "colors"
	NamingCustom  = "custom"
)

var colorNames = []string{"Red", "Blue", "Green", "Yellow", "Purple", "Orange"}

// GenerateNames n уникальных непустых имён. Неизвестный способ даёт нумерацию.
func GenerateNames(n int, naming string) []string {
	if n <= 0 {
		return nil
	}
	names := make([]string, n)
	for i := range names {
		switch naming {
		case NamingLetters:
			names[i] = "Team " + letters(i)
		case NamingColors:
			names[i] = colorNames[i%len(colorNames)] + " Team"
			// на втором круге палитры добавляем номер, чтобы имена не повторялись
			if round := i / len(colorNames); round > 0 {
				names[i] += fmt.Sprintf(" %d", round+1)
			}
		default:
			names[i] = fmt.Sprintf("Team %d", i+1)
		}
	}
	return names
}

// letters A..Z, затем AA, AB и так далее
func letters(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

// ResolveNames имена из ссылки используются, только если их хватает на все команды.
// Повторы получают номер, пустые имена заменяются на "Team N".
func ResolveNames(n int, naming string, supplied []string) []string {
	if n <= 0 {
		n = 2
	}
	if naming == "" {
		naming = NamingLetters
	}
	if len(supplied) < n {
		return GenerateNames(n, naming)
	}

	out := make([]string, n)
	seen := make(map[string]bool, n)
	for i := range out {
		name := strings.TrimSpace(supplied[i])
		if name == "" {
			continue
		}
		candidate := name
		for k := 2; seen[candidate]; k++ {
			candidate = fmt.Sprintf("%s %d", name, k)
		}
		out[i] = candidate
		seen[candidate] = true
	}
	for i := range out {
		if out[i] != "" {
			continue
		}
		k := i + 1
		for seen[fmt.Sprintf("Team %d", k)] {
			k++
		}
		out[i] = fmt.Sprintf("Team %d", k)
		seen[out[i]] = true
	}
	return out
}

// BadgeLetter символ после последнего пробела в имени
func BadgeLetter(name string) string {
	rest := name[strings.LastIndex(name, " ")+1:]
	for _, r := range rest {
		return string(r)
	}
	return ""
}

// MembersBadge "1 member" или "N members"
func MembersBadge(n int) string {
	if n == 1 {
		return "1 member"
	}
	return fmt.Sprintf("%d members", n)
}
