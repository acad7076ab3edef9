// Package printers renders catalog data as colored terminal tables.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tourcatalog/pkg/item"
	"tableflip.dev/tourcatalog/pkg/store"
	"tableflip.dev/tourcatalog/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const timeLayout = "2006-01-02 15:04"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count, total int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d of %d", count, total)
	switch total {
	case 1:
		_, _ = c.Fprintln(pp.out(), " hotel")
	default:
		_, _ = c.Fprintln(pp.out(), " hotels")
	}
}

// Items prints one table line per item, numbered by position in items.
func (pp *PrettyPrint) Items(items ...item.Item) {
	if len(items) == 0 {
		pp.None()
		return
	}
	pp.table(0, items)
}

// Row prints the items held by one window row. first is the position of the
// row's first item in the filtered dataset.
func (pp *PrettyPrint) Row(row, first int, items []item.Item) {
	h := color.New(color.FgHiBlue, color.Bold)
	_, _ = h.Fprintf(pp.out(), "row %d\n", row)
	pp.table(first, items)
}

func (pp *PrettyPrint) table(first int, items []item.Item) {
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	green := color.New(color.FgGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := []interface{}{bold.Sprint("#")}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	header = append(header, bold.Sprint("Hotel"), bold.Sprint("Stars"), bold.Sprint("Rating"), bold.Sprint("Price"), bold.Sprint("Meals"))
	tbl.AddRow(header...)

	for i, it := range items {
		cells := []interface{}{strconv.Itoa(first + i + 1)}
		if pp.ShowID {
			cells = append(cells, y.Sprint(it.ID))
		}
		price := it.PriceLabel()
		if it.Price != nil {
			price = green.Sprintf("%s -%d%%", price, it.Discount())
		}
		cells = append(cells, it.Name, it.StarsLabel(), it.RatingLabel(), price, strings.Join(it.MealPlans, ","))
		tbl.AddRow(cells...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// None prints the "no data" notice, naming the constraints to relax.
func (pp *PrettyPrint) None(fields ...string) {
	f := color.New(color.Faint, color.Italic)
	if len(fields) == 0 {
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	_, _ = f.Fprintf(pp.out(), " nothing matches %s; try --reset\n\n", strings.Join(fields, ", "))
}

// Datasets prints the snapshot catalog.
func (pp *PrettyPrint) Datasets(metas ...store.Meta) {
	if len(metas) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Request"), bold.Sprint("Hotels"), bold.Sprint("Imported"), bold.Sprint("Age"), bold.Sprint("Source"))
	for _, m := range metas {
		tbl.AddRow(m.RequestID, m.Size, m.Imported.Local().Format(timeLayout), timeutil.FormatAge(time.Since(m.Imported)), m.Source)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
