package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"movie-catalog/catalog"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 80

// termWidth reports the column count of w when it is a terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func printMovies(w io.Writer, movies []catalog.Movie, empty string) {
	if len(movies) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	fmt.Fprintln(w, catalog.PrettyHeader())
	fmt.Fprintln(w, catalog.Separator())
	for _, m := range movies {
		fmt.Fprintln(w, catalog.PrettyMovie(m))
	}
}

// printValidation lists each rejected field on its own line.
func printValidation(w io.Writer, err *catalog.ValidationError) {
	fmt.Fprintln(w, "Please fix the following:")
	for _, line := range strings.Split(strings.TrimPrefix(err.Error(), "validation failed: "), "; ") {
		fmt.Fprintf(w, "  • %s\n", line)
	}
}

var (
	barColor   = color.New(color.FgGreen)
	titleColor = color.New(color.Bold, color.FgCyan)
)

// printCharts renders the three analytics charts as horizontal text bars.
func printCharts(w io.Writer, charts catalog.Charts, width int) {
	const labelWidth = 28
	const valueWidth = 10
	barMax := width - labelWidth - valueWidth - 2
	if barMax < 10 {
		barMax = 10
	}

	titleColor.Fprintln(w, "Rating Distribution")
	maxCount := 0
	for _, b := range charts.Ratings {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range charts.Ratings {
		if b.Count == 0 {
			continue
		}
		label := fmt.Sprintf("%4.1f - %4.1f", b.Low, b.High)
		printBar(w, label, labelWidth, float64(b.Count), float64(maxCount), barMax, fmt.Sprintf("%d", b.Count))
	}
	fmt.Fprintln(w)

	titleColor.Fprintln(w, "Top 10 Box Office Performers (million $)")
	maxBox := 0.0
	if len(charts.BoxOffice) > 0 {
		maxBox = charts.BoxOffice[0].BoxOfficeValue()
	}
	for _, m := range charts.BoxOffice {
		v := m.BoxOfficeValue()
		printBar(w, m.Title, labelWidth, v, maxBox, barMax, fmt.Sprintf("%.1f", v))
	}
	fmt.Fprintln(w)

	titleColor.Fprintln(w, "Movies by Language")
	for _, l := range charts.Languages {
		printBar(w, l.Language, labelWidth, l.Share, 1, barMax, fmt.Sprintf("%d (%.0f%%)", l.Count, l.Share*100))
	}
}

func printBar(w io.Writer, label string, labelWidth int, value, maxValue float64, barMax int, suffix string) {
	n := 0
	if maxValue > 0 {
		n = int(value / maxValue * float64(barMax))
	}
	if n == 0 && value > 0 {
		n = 1
	}
	r := []rune(label)
	if len(r) > labelWidth {
		label = string(r[:labelWidth-3]) + "..."
	}
	fmt.Fprintf(w, "%-*s ", labelWidth, label)
	barColor.Fprint(w, strings.Repeat("█", n))
	fmt.Fprintf(w, " %s\n", suffix)
}
