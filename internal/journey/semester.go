package journey

import (
	"strconv"
	"strings"
)

// NotScheduled is the bucket label for courses with no semester.
const NotScheduled = "Not Scheduled"

const (
	yearRankUnparseable  = 9998
	yearRankUnscheduled  = 9999
	seasonRankUnknown    = 98
	seasonRankUnscheduled = 99
)

var seasonRanks = map[string]int{
	"spring": 1,
	"summer": 2,
	"fall":   3,
	"winter": 4,
}

// Ordinal orders semester labels chronologically. Sorting ascending by
// (YearRank, SeasonRank) puts unparseable years just before the unscheduled
// sentinel and the sentinel itself last.
type Ordinal struct {
	YearRank   int
	SeasonRank int
}

func (o Ordinal) Less(other Ordinal) bool {
	if o.YearRank != other.YearRank {
		return o.YearRank < other.YearRank
	}
	return o.SeasonRank < other.SeasonRank
}

// Resolve parses a semester label of the form "<Season> <Year>" into its
// ordinal. It is total: arbitrary input degrades to the near-end ranks
// instead of failing. The season portion is the first field, matched
// case-insensitively against the four-season enumeration; the year portion is
// the last field. Empty labels and the sentinel resolve to the unscheduled
// ordinal.
func Resolve(label string) Ordinal {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" || strings.EqualFold(trimmed, NotScheduled) {
		return Ordinal{YearRank: yearRankUnscheduled, SeasonRank: seasonRankUnscheduled}
	}

	fields := strings.Fields(trimmed)

	seasonRank, ok := seasonRanks[strings.ToLower(fields[0])]
	if !ok {
		seasonRank = seasonRankUnknown
	}

	yearRank := yearRankUnparseable
	if len(fields) > 1 {
		if year, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			yearRank = year
		}
	}

	return Ordinal{YearRank: yearRank, SeasonRank: seasonRank}
}
