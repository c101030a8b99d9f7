package album

import (
	"fmt"
	"strings"
)

// Quality selects which of the download links on a track page is used.
type Quality uint8

const (
	// QualityLow selects the first link, the smaller lossy file.
	QualityLow Quality = iota
	// QualityHigh selects the last link, the larger lossless file.
	QualityHigh
)

// ParseQuality converts "low" or "high" (any case) into a Quality.
func ParseQuality(value string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	default:
		return QualityLow, fmt.Errorf("%w: '%s'", ErrInvalidQuality, value)
	}
}

// String returns the flag value of the quality.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", uint8(q))
	}
}

// Index returns the position of the link to use among variants links, or -1 if there is none.
// Low needs at least one link. High needs at least two: a single link is never
// treated as the high quality one.
func (q Quality) Index(variants int) int {
	switch {
	case q == QualityLow && variants >= 1:
		return 0
	case q == QualityHigh && variants >= 2:
		return variants - 1
	default:
		return -1
	}
}
