package format

import "fmt"

// Duration renders a millisecond count: "<n>ms" below one second, otherwise
// seconds with two decimals ("1.50s").
func Duration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// Size renders a byte count using binary multiples up to GB.
func Size(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}
