package timesheet

import "sort"

// MergeRides folds near-adjacent rides into continuous work blocks: rides are
// sorted by start time and a ride is merged into the running block when the
// overnight-aware gap to the block's end is at most maxGapMinutes, extending
// the block's end to the later of the two ends. A short stop is a single duty
// period for labor-time purposes, not a break.
func MergeRides(rides []RideInterval, maxGapMinutes int) []RideInterval {
	spans := sortedSpans(rides)
	if len(spans) == 0 {
		return nil
	}

	merged := []span{spans[0]}
	for _, next := range spans[1:] {
		last := &merged[len(merged)-1]
		start, end := anchorToBlock(*last, next)
		if start-last.end <= maxGapMinutes {
			if end > last.end {
				last.end = end
			}
		} else {
			merged = append(merged, next)
		}
	}

	out := make([]RideInterval, 0, len(merged))
	for _, sp := range merged {
		out = append(out, sp.interval())
	}
	return out
}

// BreakHours sums the accountable gap time between the original, unmerged
// rides of one day. A gap qualifies when it is strictly longer than
// minGapMinutes and at most capMinutes; longer gaps are off-duty and excluded
// entirely. The day's total is capped at capMinutes and returned in hours.
func BreakHours(rides []RideInterval, minGapMinutes, capMinutes int) float64 {
	spans := sortedSpans(rides)
	if len(spans) < 2 {
		return 0
	}

	total := 0
	for i := 1; i < len(spans); i++ {
		start, _ := anchorToBlock(spans[i-1], spans[i])
		gap := start - spans[i-1].end
		if gap > minGapMinutes && gap <= capMinutes {
			total += gap
		}
	}
	if total > capMinutes {
		total = capMinutes
	}
	return float64(total) / 60
}

// anchorToBlock re-anchors next to the day block starts on: a next ride that
// begins before the block's start belongs to the following day.
func anchorToBlock(block, next span) (int, int) {
	start, end := next.start, next.end
	if start < block.start {
		start += minutesPerDay
		end += minutesPerDay
	}
	return start, end
}

func sortedSpans(rides []RideInterval) []span {
	spans := make([]span, 0, len(rides))
	for _, r := range rides {
		spans = append(spans, newSpan(r))
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}
