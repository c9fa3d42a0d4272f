package gate

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

const patternCompileErrorFormat = "compile pattern %q: %w"

// Matcher decides whether a staged path falls under a rule. A path matches
// when it carries one of the configured extensions or satisfies one of the
// glob patterns; a matcher with neither accepts nothing.
type Matcher struct {
	extensions []string
	patterns   []glob.Glob
}

// NewMatcher compiles a matcher from extension suffixes and glob patterns.
func NewMatcher(extensions []string, patterns []string) (Matcher, error) {
	normalizedExtensions := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmedExtension := strings.TrimSpace(extension)
		if trimmedExtension == "" {
			continue
		}
		normalizedExtensions = append(normalizedExtensions, trimmedExtension)
	}

	compiledPatterns := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		compiledPattern, compileErr := glob.Compile(trimmedPattern, '/')
		if compileErr != nil {
			return Matcher{}, fmt.Errorf(patternCompileErrorFormat, trimmedPattern, compileErr)
		}
		compiledPatterns = append(compiledPatterns, compiledPattern)
	}

	return Matcher{extensions: normalizedExtensions, patterns: compiledPatterns}, nil
}

// Matches reports whether the path is covered by this matcher.
func (matcher Matcher) Matches(path string) bool {
	for _, extension := range matcher.extensions {
		if strings.HasSuffix(path, extension) {
			return true
		}
	}
	for _, compiledPattern := range matcher.patterns {
		if compiledPattern.Match(path) {
			return true
		}
	}
	return false
}
