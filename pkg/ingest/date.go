package ingest

import (
	"fmt"
	"strings"
	"time"
)

// ParseMatchDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date and
// returns it in UTC. An empty value means no date.
func ParseMatchDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid match date %q: want YYYY-MM-DD or RFC 3339", value)
}
