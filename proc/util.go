package proc

// DefaultRoot is where procfs is mounted on Linux.
const DefaultRoot = "/proc"

const defaultHZ = 100

func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
