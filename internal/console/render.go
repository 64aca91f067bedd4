package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"github.com/rpggio/todolist/internal/domain/item"
)

const (
	ruleWidth        = 30
	descriptionWidth = 90
	maxColumnWidth   = 40
)

var (
	bold    = color.New(color.Bold)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	faint   = color.New(color.Faint, color.Italic)
)

// renderItem prints the item card.
func renderItem(w io.Writer, it *item.ListItem) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(w, "%s [%s]\n\n", bold.Sprint("Title:"), it.Title)
	fmt.Fprintf(w, "%s [%s]\n\n", bold.Sprint("Description:"), wordwrap.String(it.Description, descriptionWidth))
	fmt.Fprintf(w, "%s [%s]\n", bold.Sprint("Created:"), item.FormatDisplay(it.CreatedAt))
	if it.DueDate != nil {
		fmt.Fprintf(w, "%s [%s]\n", bold.Sprint("Due date:"), item.FormatDisplay(*it.DueDate))
	}
	fmt.Fprintf(w, "%s [%s]\n", bold.Sprint("Status:"), it.Status)
}

// renderList prints every item as a table row, ordered by title.
func renderList(w io.Writer, items []item.ListItem) {
	if len(items) == 0 {
		faint.Fprintln(w, "\nYour to-do list is empty.")
		return
	}

	sorted := make([]item.ListItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxColumnWidth
	tbl.AddRow(bold.Sprint("TITLE"), bold.Sprint("STATUS"), bold.Sprint("DUE"), bold.Sprint("CREATED"))
	for _, it := range sorted {
		due := "-"
		if it.DueDate != nil {
			due = item.FormatDisplay(*it.DueDate)
		}
		tbl.AddRow(it.Title, it.Status, due, item.FormatDisplay(it.CreatedAt))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, tbl)
}

func reportSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, format+"\n", args...)
}

func reportError(w io.Writer, err error) {
	failure.Fprintf(w, "\nError: %v\n", err)
}
