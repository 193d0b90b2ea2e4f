package pages

import (
	"fmt"
	"strconv"
)

const defaultSize = 10

// Page converts a from/size query pair into a limit and offset. The page
// index is from/size when from is positive, page zero otherwise; the
// offset is the start of that page, not from itself.
func Page(from, size int) (limit, offset int) {
	if size <= 0 {
		size = defaultSize
	}
	page := 0
	if from > 0 {
		page = from / size
	}
	return size, page * size
}

// FromQuery parses the raw from/size query parameters, applying the
// defaults from=0 size=10 for absent values.
func FromQuery(from, size string) (int, int, error) {
	f, s := 0, defaultSize
	if from != "" {
		v, err := strconv.Atoi(from)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("invalid from: %s", from)
		}
		f = v
	}
	if size != "" {
		v, err := strconv.Atoi(size)
		if err != nil || v <= 0 {
			return 0, 0, fmt.Errorf("invalid size: %s", size)
		}
		s = v
	}
	return f, s, nil
}
