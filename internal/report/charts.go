package report

import (
	"fmt"
	"strings"
)

// barWidth is the maximum width of a text bar in characters.
const barWidth = 30

// bar renders a horizontal text bar proportional to count/max.
// A non-zero count always renders at least one block.
func bar(count, max int) string {
	if max == 0 || count == 0 {
		return strings.Repeat(" ", barWidth)
	}
	width := count * barWidth / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width) + strings.Repeat(" ", barWidth-width)
}

// lengthBuckets groups word counts into fixed 50-word bands up to 250+,
// returning bucket counts and their labels.
func lengthBuckets(wordCounts []int) ([]int, []string) {
	bounds := []int{50, 100, 150, 200, 250}
	buckets := make([]int, len(bounds)+1)

	for _, wc := range wordCounts {
		placed := false
		for i, upper := range bounds {
			if wc < upper {
				buckets[i]++
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(bounds)]++
		}
	}

	labels := make([]string, len(bounds)+1)
	lower := 0
	for i, upper := range bounds {
		labels[i] = fmt.Sprintf("%d-%d", lower, upper-1)
		lower = upper
	}
	labels[len(bounds)] = fmt.Sprintf("%d+", bounds[len(bounds)-1])

	return buckets, labels
}
