package util

// SanitizeTitle replaces everything outside [a-zA-Z0-9] with underscores so
// a video title can be used as part of an on-disk filename.
func SanitizeTitle(title string) string {
	b := []byte(title)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
