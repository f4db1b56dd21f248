package proc

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadMemTotalKB returns MemTotal from meminfo, or 0 when unknown.
func ReadMemTotalKB(root string) int64 {
	f, err := os.Open(filepath.Join(root, "meminfo"))
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "MemTotal:") {
			fields := strings.Fields(line)
			for _, tok := range fields {
				if v, err := strconv.ParseInt(tok, 10, 64); err == nil && v > 0 {
					return v
				}
			}
		}
	}
	return 0
}
