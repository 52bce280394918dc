// utils/emailalias.go - Email alias domain expansion
package utils

import (
	"os"
	"strings"
	"sync"
)

var (
	aliasOnce    sync.Once
	aliasDomains map[string][]string
)

// loadAliasDomains parses EMAIL_ALIAS_DOMAINS, a semicolon-separated
// list of equivalent domain pairs, e.g.
// "example.com=alumni.example.com;uni.fi=student.uni.fi".
// Both directions of each pair are recorded.
func loadAliasDomains() {
	aliasDomains = make(map[string][]string)
	raw := strings.TrimSpace(os.Getenv("EMAIL_ALIAS_DOMAINS"))
	if raw == "" {
		return
	}

	for _, pair := range strings.Split(raw, ";") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		a := strings.ToLower(strings.TrimSpace(parts[0]))
		b := strings.ToLower(strings.TrimSpace(parts[1]))
		if a == "" || b == "" || a == b {
			continue
		}
		aliasDomains[a] = append(aliasDomains[a], b)
		aliasDomains[b] = append(aliasDomains[b], a)
	}
}

// ResetAliasDomainsForTest reloads the alias configuration. Tests set
// EMAIL_ALIAS_DOMAINS and call this before exercising expansion.
func ResetAliasDomainsForTest() {
	aliasOnce = sync.Once{}
	aliasDomains = nil
}

// ExpandEmailAliases returns the normalized email plus every variant
// reachable through configured equivalent domains. The input address is
// always first.
func ExpandEmailAliases(email string) []string {
	aliasOnce.Do(loadAliasDomains)

	normalized := strings.ToLower(strings.TrimSpace(email))
	out := []string{normalized}

	at := strings.LastIndex(normalized, "@")
	if at < 0 {
		return out
	}
	local, domain := normalized[:at], normalized[at+1:]

	for _, alt := range aliasDomains[domain] {
		out = append(out, local+"@"+alt)
	}
	return out
}
