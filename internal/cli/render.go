package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"codetrack/internal/models"
)

func renderRefresh(out io.Writer, r *models.RefreshResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	switch {
	case r.LC != nil:
		fmt.Fprintf(w, "LeetCode\t%d solved (E %d / M %d / H %d)\trank %s\tstreak %dd%s\n",
			r.LC.TotalSolved, r.LC.EasySolved, r.LC.MediumSolved, r.LC.HardSolved,
			r.LC.Ranking, r.LC.Streak, cachedMark(r.LC.FromCache))
	case r.LCError != nil:
		fmt.Fprintf(w, "LeetCode\t%s\n", r.LCError.Message)
	}

	switch {
	case r.GFG != nil:
		fmt.Fprintf(w, "GFG\t%d solved\tscore %s\tstreak %d/%d%s\n",
			r.GFG.TotalProblemsSolved, r.GFG.CodingScore, r.GFG.CurrentStreak, r.GFG.MaxStreak,
			cachedMark(r.GFG.FromCache))
	case r.GFGError != nil:
		fmt.Fprintf(w, "GFG\t%s\n", r.GFGError.Message)
	}

	s := r.Summary
	fmt.Fprintf(w, "Today\tLC %s\tGFG %s\n", progress(s.LCToday), progress(s.GFGToday))
	fmt.Fprintf(w, "Week\t%s\n", progress(s.Week))
	fmt.Fprintf(w, "Tracking\t%d day(s)\tbest %d\tavg %.1f/day\n", s.TrackingStreak, s.BestDay, s.AveragePerDay)
	return w.Flush()
}

func renderHistory(out io.Writer, deltas []models.DailyDelta) error {
	if len(deltas) == 0 {
		fmt.Fprintln(out, "No history yet. Run 'codetrack refresh' to record today.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tLC\tGFG\tTOTAL\t+LC\t+GFG\t+DAY")
	for i := len(deltas) - 1; i >= 0; i-- {
		d := deltas[i]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n", d.Date, d.LC, d.GFG, d.Total, d.LCDelta, d.GFGDelta, d.DayTotal)
	}
	return w.Flush()
}

func progress(p models.GoalProgress) string {
	return fmt.Sprintf("%d/%d (%.0f%%)", p.Done, p.Goal, p.Percent)
}

func cachedMark(fromCache bool) string {
	if fromCache {
		return "\t[cached]"
	}
	return ""
}
