package proc

import (
	"fmt"
	"os"
	"path/filepath"
)

func ReadUptime(root string) float64 {
	f, err := os.Open(filepath.Join(root, "uptime"))
	if err != nil {
		return 0
	}
	defer f.Close()

	var up float64
	fmt.Fscan(f, &up)
	return up
}
