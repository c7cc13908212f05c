package utils

import "regexp"

const SpoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:128.0) Gecko/20100101 Firefox/128.0"

var (
	doctypeRegex  = regexp.MustCompile(`(?i)<!doctype\s+html`)
	htmlTagsRegex = regexp.MustCompile(`(?is)<html[\s>].*</html\s*>`)
	bodyTagsRegex = regexp.MustCompile(`(?is)<body[\s>].*</body\s*>`)
)

func Filter[A any](arr []A, f func(A) bool) []A {
	var res []A
	res = make([]A, 0)
	for _, v := range arr {
		if f(v) {
			res = append(res, v)
		}
	}
	return res
}

// IsValidHTML reports whether s looks like an HTML document: it either
// declares an HTML doctype or has a complete html or body element.
func IsValidHTML(s string) bool {
	return doctypeRegex.MatchString(s) ||
		htmlTagsRegex.MatchString(s) ||
		bodyTagsRegex.MatchString(s)
}
