// Package service provides display formatting for card numbers. Formatting is
// display-only; the ungrouped value stays inside the sensitive data store.
package service

import "strings"

// groupSeparator joins PAN display groups.
const groupSeparator = "  "

// FormatPAN groups a card number for display. A 15-digit number is grouped
// 4-6-5 (the American Express scheme); anything else is grouped in chunks of
// four from the start, with the last chunk possibly shorter.
func FormatPAN(pan string) string {
	if len(pan) == 15 {
		return strings.Join([]string{pan[:4], pan[4:10], pan[10:]}, groupSeparator)
	}

	var groups []string
	for i := 0; i < len(pan); i += 4 {
		end := i + 4
		if end > len(pan) {
			end = len(pan)
		}
		groups = append(groups, pan[i:end])
	}
	return strings.Join(groups, groupSeparator)
}
