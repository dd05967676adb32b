package format

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// YesNo renders a boolean the way the patch listing does.
func YesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
