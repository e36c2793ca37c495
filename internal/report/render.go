package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const labelWidth = 24

// Render writes s, and c when not nil, in the benchmark report layout.
func Render(w io.Writer, s Summary, c *Change) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%-*s time:   [%s %s %s]\n", labelWidth, s.Name,
		FormatDuration(s.Mean.Low), FormatDuration(s.Mean.Mid), FormatDuration(s.Mean.High))

	if c != nil {
		fmt.Fprintf(&b, "%-*s change: [%s %s %s]\n", labelWidth, "",
			formatPercent(c.Low), formatPercent(c.Mid), formatPercent(c.High))
		fmt.Fprintf(&b, "%-*s %s\n", labelWidth, "", c.Verdict)
	}

	if total := s.Outliers.Total(); total > 0 {
		fmt.Fprintf(&b, "Found %d outliers among %d measurements (%.2f%%)\n",
			total, s.Samples, 100*float64(total)/float64(s.Samples))
		for _, bucket := range []struct {
			n    int
			name string
		}{
			{s.Outliers.LowSevere, "low severe"},
			{s.Outliers.LowMild, "low mild"},
			{s.Outliers.HighMild, "high mild"},
			{s.Outliers.HighSevere, "high severe"},
		} {
			if bucket.n == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %d (%.2f%%) %s\n", bucket.n, 100*float64(bucket.n)/float64(s.Samples), bucket.name)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDuration prints d with two decimals in the largest fitting unit.
func FormatDuration(d time.Duration) string {
	ns := float64(d)
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.2f ns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.2f µs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.2f ms", ns/1e6)
	default:
		return fmt.Sprintf("%.2f s", ns/1e9)
	}
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%+.4f%%", 100*f)
}
