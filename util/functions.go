package util

func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func Min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func Prefix(s string, n int) string {
	return s[0:Min(len(s), n)]
}
