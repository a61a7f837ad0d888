package domain

import (
	"net"
	"net/url"
	"strings"
	"unicode"
)

// CleanURL normalises a URL for matching and duplicate detection. The
// scheme, a leading "www.", the query string and fragment are stripped,
// trailing slashes are removed and the rest is lowercased. The function
// is idempotent: applying it to its own output changes nothing.
func CleanURL(raw string) string {
	u := strings.TrimSpace(raw)
	if i := strings.Index(u, "://"); i >= 0 && !strings.ContainsAny(u[:i], "/?#") {
		u = u[i+3:]
	}
	if len(u) > 4 && strings.EqualFold(u[:4], "www.") {
		u = u[4:]
	}
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	return strings.ToLower(u)
}

// TrimTrailingSlash returns raw without trailing slash characters.
func TrimTrailingSlash(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// LooksLikeURL reports whether a term reads as a web address rather than
// free text: an explicit http(s) scheme, an IP address, or a dotted
// hostname with an alphabetic TLD. Terms containing whitespace never
// qualify.
func LooksLikeURL(term string) bool {
	t := strings.TrimSpace(term)
	if t == "" || strings.ContainsAny(t, " \t") {
		return false
	}
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
		return true
	}
	host := t
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if net.ParseIP(host) != nil {
		return true
	}
	dot := strings.LastIndexByte(host, '.')
	if dot <= 0 || dot == len(host)-1 {
		return false
	}
	tld := host[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// EnsureScheme prefixes https:// when the term lacks an explicit scheme.
func EnsureScheme(term string) string {
	t := strings.TrimSpace(term)
	if strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") {
		return t
	}
	return "https://" + t
}

// ExpandSearchURL substitutes the query term into a search engine URL
// template. The $s placeholder receives the percent-encoded term.
func ExpandSearchURL(template, term string) string {
	return strings.ReplaceAll(template, "$s", url.QueryEscape(term))
}
