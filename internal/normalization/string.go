package normalization

import (
  "strings"
)

// ParseInputString lowercases and trims caller-supplied identity fields
// (usernames, role names). Never use it on passwords or display text.
func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInputString trims without changing case. Free-text fields such as
// grades and semester labels keep their casing.
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}
