package fetch

import (
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Mount returns the jobs issued when the view first opens: the initial rows
// and the per-status counts.
func (o *Orchestrator) Mount() []Job {
	return []Job{o.Replace(), o.Counts()}
}

// OnSortChange applies a new sort and refetches. Returns nil when the sort is unchanged.
func (o *Orchestrator) OnSortChange(s *query.Sort) Job {
	if !o.state.SetSort(s) {
		return nil
	}
	return o.Replace()
}

// OnTabChange switches the status tab, resets to page 1 and refetches.
func (o *Orchestrator) OnTabChange(tab taskstore.TaskStatus) Job {
	if !o.state.SetTab(tab) {
		return nil
	}
	o.resetPage()
	return o.Replace()
}

// OnSearch applies a column search, resets to page 1 and refetches.
func (o *Orchestrator) OnSearch(column, q string) Job {
	if !o.state.SetSearch(column, q) {
		return nil
	}
	o.resetPage()
	return o.Replace()
}

// OnPageChange moves the pagination window. It refetches only in pagination
// mode; in infinite-scroll mode pages advance through Append.
func (o *Orchestrator) OnPageChange(p query.Page) Job {
	if !o.state.SetPage(p) || o.state.InfiniteScroll() {
		return nil
	}
	return o.Replace()
}

// ToggleInfinite switches between infinite scroll and pagination, resets to
// page 1 and refetches.
func (o *Orchestrator) ToggleInfinite() Job {
	o.state.SetInfiniteScroll(!o.state.InfiniteScroll())
	o.resetPage()
	return o.Replace()
}

// Refresh refetches the current rows and the counts.
func (o *Orchestrator) Refresh() []Job {
	return []Job{o.Replace(), o.Counts()}
}

func (o *Orchestrator) resetPage() {
	p := o.state.Page()
	p.Number = 1
	o.state.SetPage(p)
}
