package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// Expand replaces every ${env.KEY} in value with the environment value of KEY.
// ${env.KEY:-fallback} yields fallback when KEY is unset or empty. Malformed
// expressions are kept literally.
func Expand(value string) string {
	return expand(value, os.LookupEnv)
}

func expand(value string, lookup func(key string) (string, bool)) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var b strings.Builder
	for {
		idx := strings.Index(value, envPrefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		key, fallback, hasFallback := strings.Cut(rest[:end], ":-")
		if !isEnvKey(key) {
			b.WriteString(envPrefix)
			value = rest
			continue
		}
		resolved, ok := lookup(key)
		if (!ok || resolved == "") && hasFallback {
			resolved = fallback
		}
		b.WriteString(resolved)
		value = rest[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
