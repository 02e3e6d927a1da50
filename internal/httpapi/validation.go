package httpapi

import "strings"

const minPasswordLen = 8

func normalizeEmail(s string) string {
	return strings.TrimSpace(s)
}

func validEmail(s string) bool {
	if len(s) < 3 || len(s) > 254 {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	return !strings.Contains(s[at+1:], "@")
}
