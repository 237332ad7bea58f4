package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dpratama/typerush/internal/model"
)

const terminalWidthBackup = 80

// RenderLeaderboard prints a ranked score table.
func RenderLeaderboard(w io.Writer, scores []model.Score) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No scores found.")
		return err
	}
	headers := []string{"#", "Player", "Net WPM", "Gross WPM", "Accuracy", "Score", "Language", "Date"}
	rows := make([][]string, 0, len(scores))
	for i, sc := range scores {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			sc.Username,
			fmt.Sprintf("%d", sc.NetWPM),
			fmt.Sprintf("%d", sc.GrossWPM),
			fmt.Sprintf("%.1f%%", sc.Accuracy),
			fmt.Sprintf("%.1f", sc.WeightedScore),
			sc.Language,
			sc.PlayedAt,
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints a user's scores plus a WPM trend sparkline sized to
// the terminal. Scores arrive newest-first; the trend runs oldest to newest.
func RenderHistory(w io.Writer, scores []model.Score, window int) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	headers := []string{"Net WPM", "Gross WPM", "Accuracy", "Score", "Time", "Language", "Date"}
	rows := make([][]string, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, []string{
			fmt.Sprintf("%d", sc.NetWPM),
			fmt.Sprintf("%d", sc.GrossWPM),
			fmt.Sprintf("%.1f%%", sc.Accuracy),
			fmt.Sprintf("%.1f", sc.WeightedScore),
			fmt.Sprintf("%ds", sc.TimeMode),
			sc.Language,
			sc.PlayedAt,
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(scores) < 2 {
		return nil
	}
	wpms := make([]float64, len(scores))
	for i, sc := range scores {
		wpms[len(scores)-1-i] = float64(sc.NetWPM)
	}
	trend := Downsample(MovingAverage(wpms, window), terminalWidth()-len("WPM trend "))
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "WPM trend %s\n", Sparkline(trend))
	return err
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
