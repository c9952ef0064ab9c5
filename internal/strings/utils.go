// Package strings provides common string utilities.
package strings

// Truncate shortens a string to n runes, adding an ellipsis when it cuts.
// Rune-based so document names with multibyte characters stay intact.
func Truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
