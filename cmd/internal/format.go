// Package internal holds small helpers shared by the taskdesk commands.
package internal

import (
	"strings"
)

// Share returns n as a whole percentage of total, 0 when total is 0.
func Share(n, total int) int {
	if total <= 0 || n <= 0 {
		return 0
	}
	if n >= total {
		return 100
	}
	return n * 100 / total
}

// ShareBar draws n out of total as a bar of the given inner width.
//
// Example: ShareBar(5, 10, 10) returns "[#####.....]"
func ShareBar(n, total, width int) string {
	if width < 0 {
		width = 0
	}
	filled := Share(n, total) * width / 100

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat("#", filled))
	sb.WriteString(strings.Repeat(".", width-filled))
	sb.WriteString("]")
	return sb.String()
}
