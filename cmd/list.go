package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/fetch"
	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/grid"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/tui"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

type listFlags struct {
	tab        string
	sortColumn string
	sortOrder  string
	column     string
	query      string
	page       int
	pageSize   int
	view       string
	json       bool
}

func defaultListFlags() listFlags {
	return listFlags{
		tab:        string(viewstate.DefaultTab),
		sortColumn: tui.DefaultSort.Column,
		sortOrder:  string(tui.DefaultSort.Direction),
		page:       viewstate.DefaultPage,
	}
}

func newListCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of tasks",
		Long: `Print one page of tasks for a status tab.

Sorting, the column search and the page window can be given as flags or as a
single --view query string, the same format the interactive table saves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, f)
		},
	}

	def := defaultListFlags()
	cmd.Flags().StringVar(&f.tab, "tab", def.tab, "status tab (open, in_progress, closed)")
	cmd.Flags().StringVar(&f.sortColumn, "sort-column", def.sortColumn, "column to sort by")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", def.sortOrder, "sort order (asc or desc)")
	cmd.Flags().StringVar(&f.column, "column", "", "column to search")
	cmd.Flags().StringVar(&f.query, "query", "", "search pattern for --column")
	cmd.Flags().IntVar(&f.page, "page", def.page, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (0 uses config)")
	cmd.Flags().StringVar(&f.view, "view", "", "view query string; overrides the other view flags")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the API response as JSON")

	return cmd
}

func runList(cmd *cobra.Command, f listFlags) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	params, err := listParams(f, e.cfg.View.PageSize)
	if err != nil {
		return err
	}

	st := viewstate.New(params, false)
	o := fetch.New(st, e.provider, e.log)
	ctx := cmd.Context()
	out := o.Apply(o.Replace()(ctx))
	// a page past the end is corrected to page 1 with a follow-up fetch
	for out.Err == nil && out.Next != nil {
		out = o.Apply(out.Next(ctx))
	}
	if out.Err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", out.Err)
	}

	if f.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(provider.TasksResponse{Tasks: st.Tasks(), TotalCount: st.TotalCount()})
	}

	printTable(cmd.OutOrStdout(), st)
	return nil
}

// listParams builds the view from flags, or from --view when given.
func listParams(f listFlags, defaultSize int) (viewstate.Params, error) {
	if f.view != "" {
		p, _, err := viewstate.ParseView(f.view, defaultSize, false)
		return p, err
	}

	p := viewstate.DefaultParams()

	tab := taskstore.TaskStatus(f.tab)
	if !tab.IsValid() {
		return p, fmt.Errorf("invalid tab %q", f.tab)
	}
	p.Tab = tab

	if f.sortColumn != "" {
		if !query.Sortable(f.sortColumn) {
			return p, fmt.Errorf("column %q is not sortable", f.sortColumn)
		}
		dir, err := query.ParseDirection(f.sortOrder)
		if err != nil {
			return p, err
		}
		p.Sort = &query.Sort{Column: f.sortColumn, Direction: dir}
	}

	if f.column != "" || f.query != "" {
		if !query.HasField(f.column) {
			return p, fmt.Errorf("unknown search column %q", f.column)
		}
		p.Column, p.Query = f.column, strings.TrimSpace(f.query)
	}

	size := f.pageSize
	if size <= 0 {
		size = defaultSize
	}
	p.Page = query.Page{Number: max(1, f.page), Size: size}
	return p, nil
}

var (
	headerColor   = color.New(color.FgCyan)
	priorityColor = map[taskstore.Priority]*color.Color{
		taskstore.PriorityHigh:   color.New(color.FgRed),
		taskstore.PriorityMedium: color.New(color.FgYellow),
		taskstore.PriorityLow:    color.New(color.FgGreen),
	}
)

// printTable writes the rows through the grid projection. Whole lines are
// colored so tabwriter sees the same escape width on every row.
func printTable(w io.Writer, st *viewstate.Store) {
	columns := tui.Columns(false)
	for i := range columns {
		columns[i].Header = plainHeader
	}

	g := grid.New[taskstore.Task]()
	page := st.Page()
	g.Configure(columns, st.Tasks(), grid.Options{
		Manual:    true,
		Page:      page.Number,
		PageSize:  page.Size,
		TotalRows: st.TotalCount(),
	})
	g.SetSort(st.Sort())

	_, _ = fmt.Fprintf(w, "%s: %d task(s)", format.Status(st.Tab()), st.TotalCount())
	if col, q := st.Search(); col != "" {
		_, _ = fmt.Fprintf(w, ", %s matches %q", col, q)
	}
	_, _ = fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = g.HeaderText(col)
	}
	_, _ = fmt.Fprintln(tw, headerColor.Sprint(strings.Join(headers, "\t")))

	for _, row := range g.Rows() {
		if row.Sentinel {
			_, _ = fmt.Fprintln(tw, row.Cells[0].Text)
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.Text
		}
		line := strings.Join(cells, "\t")
		if c, ok := priorityColor[row.Record.Priority]; ok {
			line = c.Sprint(line)
		}
		_, _ = fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()

	if g.PageCount() > 1 {
		_, _ = fmt.Fprintf(w, "%s (%d per page)\n", g.PageLabel(), page.Size)
	}
}

func plainHeader(title string, ind grid.Indicator, _ bool) string {
	title = strings.ToUpper(title)
	if ind == grid.None {
		return title
	}
	return title + " " + ind.Glyph()
}
