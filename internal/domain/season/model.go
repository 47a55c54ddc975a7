package season

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Season struct {
	ID            int64
	CompetitionID int64
	Name          string
	StartDate     *time.Time
	EndDate       *time.Time
}

// PointsRule is the league points awarded per result.
type PointsRule struct {
	Win  int
	Draw int
	Loss int
}

var DefaultPointsRule = PointsRule{Win: 3, Draw: 1, Loss: 0}

func (r PointsRule) IsDefault() bool {
	return r == DefaultPointsRule
}

func (r PointsRule) String() string {
	return fmt.Sprintf("%d-%d-%d", r.Win, r.Draw, r.Loss)
}

// ParsePointsRule reads "W-D-L" (also "/" or ":" separated) such as "2-1-0".
func ParsePointsRule(raw string) (PointsRule, bool) {
	parts := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
		return r == '-' || r == '/' || r == ':'
	})
	if len(parts) != 3 {
		return PointsRule{}, false
	}
	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return PointsRule{}, false
		}
		values[i] = v
	}
	return PointsRule{Win: values[0], Draw: values[1], Loss: values[2]}, true
}
