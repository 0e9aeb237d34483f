//go:build unit

package pyproject_test

import "strings"

func replaceOnce(s, old, replacement string) string {
	return strings.Replace(s, old, replacement, 1)
}
