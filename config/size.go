package config

import (
	"fmt"
	"strconv"
	"strings"
)

var sizeMultipliers = map[string]int64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// ParseSize parses strings like "32KB", "256MB", "8GB", "512B" into a byte
// count. A missing unit is treated as bytes. Units are case-insensitive and
// may be separated from the number by whitespace.
func ParseSize(s string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, fmt.Errorf("config: empty size string")
	}

	split := len(trimmed)
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			split = i
			break
		}
	}
	numPart := trimmed[:split]
	unitPart := strings.TrimSpace(trimmed[split:])
	if unitPart == "" {
		unitPart = "B"
	}

	if numPart == "" {
		return 0, fmt.Errorf("config: invalid size string %q: missing number", s)
	}
	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid number %q in size string %q", numPart, s)
	}

	mult, ok := sizeMultipliers[unitPart]
	if !ok {
		return 0, fmt.Errorf("config: invalid unit %q in size string %q", unitPart, s)
	}
	return n * mult, nil
}
