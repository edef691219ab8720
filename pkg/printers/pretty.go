package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kcal/pkg/store"
)

const stampLayout = "2006-01-02 15:04"

type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Text prints a titled block of pre-rendered lines.
func (pp *PrettyPrint) Text(title, body string) {
	pp.Title(title)
	_, _ = fmt.Fprintln(pp.out(), body)
}

// Status prints the counter and its step sizes.
func (pp *PrettyPrint) Status(snap store.Snapshot) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(f.Sprint("Calories"), b.Sprintf("%d kcal", snap.Calories))
	tbl.AddRow(f.Sprint("Add step"), fmt.Sprintf("+%d", snap.LeftClickAmount))
	tbl.AddRow(f.Sprint("Subtract step"), fmt.Sprintf("-%d", snap.RightClickAmount))
	tbl.AddRow(f.Sprint("Session started"), snap.SessionStart.Local().Format(stampLayout))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Short prints the compact counter label on its own line.
func (pp *PrettyPrint) Short(calories int) {
	_, _ = fmt.Fprintln(pp.out(), Compact(calories))
}

// Warn prints a highlighted one-line notice.
func (pp *PrettyPrint) Warn(msg string) {
	y := color.New(color.FgHiYellow)
	_, _ = y.Fprintln(pp.out(), msg)
}

// Compact shortens a calorie count to fit a status bar: whole thousands
// become "1k", "2k" and so on.
func Compact(calories int) string {
	if calories >= 1000 {
		return strconv.Itoa(calories/1000) + "k"
	}
	return strconv.Itoa(calories)
}
