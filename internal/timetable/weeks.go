package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// weekAllMarker is the label the upstream mixes into its week set alongside
// the numeric week labels.
const weekAllMarker = "all"

// ExpandWeeks expands a week specification ("all" or "1-3,5,7-9") into
// concrete 1-based week offsets. Specification order is preserved and
// overlapping ranges are not deduplicated.
func ExpandWeeks(spec string, allWeeks []string) ([]int, error) {
	if spec == weekAllMarker {
		weeks := make([]int, 0, len(allWeeks))
		for _, label := range allWeeks {
			if label == weekAllMarker {
				continue
			}
			n, err := strconv.Atoi(label)
			if err != nil {
				// Non-numeric labels carry no schedule information.
				continue
			}
			weeks = append(weeks, n)
		}
		return weeks, nil
	}

	var weeks []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(start)
			if err != nil {
				return nil, fmt.Errorf("malformed week range %q in %q", part, spec)
			}
			hi, err := strconv.Atoi(end)
			if err != nil {
				return nil, fmt.Errorf("malformed week range %q in %q", part, spec)
			}
			for w := lo; w <= hi; w++ {
				weeks = append(weeks, w)
			}
			continue
		}

		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed week %q in %q", part, spec)
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}
