package proc

import (
	"fmt"
	"os"
	"path/filepath"
)

func ReadLoadavg(root string) (float64, float64, float64) {
	f, err := os.Open(filepath.Join(root, "loadavg"))
	if err != nil {
		return 0, 0, 0
	}
	defer f.Close()

	var l1, l5, l15 float64
	fmt.Fscan(f, &l1, &l5, &l15)

	return l1, l5, l15
}
