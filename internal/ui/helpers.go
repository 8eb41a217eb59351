package ui

import (
	"fmt"
	"strings"
)

func enumLabels[T ~string](values []T) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = string(v)
	}
	return labels
}

func indexOf[T comparable](values []T, v T) int {
	for i, item := range values {
		if item == v {
			return i
		}
	}
	return -1
}

// fieldErrorsText lists field errors in the given order
func fieldErrorsText(errs map[string]string, order []string) string {
	var lines []string
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			lines = append(lines, fmt.Sprintf("[red]%s[-]", msg))
		}
	}
	return strings.Join(lines, "  ")
}
