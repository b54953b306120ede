// Package fetch decides when to fetch tasks, what to ask the provider for and
// how to merge the result into the view state.
//
// Orchestrator methods mutate the view state and return a Job. Jobs run off the
// UI goroutine and only talk to the provider; the Msg a job returns is handed
// back to Apply on the UI goroutine. Every replace or append bumps a generation
// counter so results of superseded requests are dropped.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

// Kind identifies the request a Msg answers.
type Kind int

const (
	KindReplace Kind = iota + 1
	KindAppend
	KindCounts
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindReplace:
		return "replace"
	case KindAppend:
		return "append"
	case KindCounts:
		return "counts"
	case KindUpdate:
		return "update"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Msg is the outcome of a Job.
type Msg struct {
	Kind   Kind
	Gen    uint64
	Result provider.Result
	Counts provider.Counts
	Task   taskstore.Task
	Err    error

	// Page is the window that was requested.
	Page query.Page
	// Restart is set on appends that reload from page 1 after the window
	// went stale; the rows are dropped when the result lands.
	Restart bool

	// ScrollBack is set on appends triggered by reaching the absolute end.
	ScrollBack bool
}

// Job performs one provider call.
type Job func(ctx context.Context) Msg

// Outcome reports what Apply did with a Msg.
type Outcome struct {
	// Stale is true when the message was superseded and ignored.
	Stale bool
	// Changed is true when rows, counts or the selection changed.
	Changed bool
	// Next is a follow-up job, such as a counts refresh after a status change.
	Next Job
	Err  error
}

// Orchestrator issues fetches for a view-state store.
type Orchestrator struct {
	state    *viewstate.Store
	provider provider.Provider
	log      lgr.L

	gen      uint64
	countGen uint64
}

// New creates an Orchestrator. log may be nil.
func New(state *viewstate.Store, p provider.Provider, log lgr.L) *Orchestrator {
	if log == nil {
		log = lgr.NoOp
	}
	return &Orchestrator{state: state, provider: p, log: log}
}

// State returns the store the orchestrator writes to.
func (o *Orchestrator) State() *viewstate.Store {
	return o.state
}

// request is the immutable argument set captured for a job.
type request struct {
	sort    *query.Sort
	page    query.Page
	filters query.Filters
}

func (o *Orchestrator) capture(page query.Page) request {
	var sort *query.Sort
	if s := o.state.Sort(); s != nil {
		cp := *s
		sort = &cp
	}
	return request{sort: sort, page: page, filters: o.state.Filters()}
}

// Replace requests a fresh row set. In infinite-scroll mode the page resets to
// 1, otherwise the current page is requested. Any in-flight fetch is superseded.
func (o *Orchestrator) Replace() Job {
	page := o.state.Page()
	if o.state.InfiniteScroll() && page.Number != 1 {
		page.Number = 1
		o.state.SetPage(page)
	}

	o.gen++
	gen := o.gen
	o.state.BeginLoad(viewstate.LoadInitial)
	req := o.capture(page)
	o.log.Logf("[DEBUG] replace #%d sort=%s page=%d/%d", gen, req.sort, page.Number, page.Size)

	p := o.provider
	return func(ctx context.Context) Msg {
		res, err := p.FetchTasks(ctx, req.sort, req.page, req.filters)
		return Msg{Kind: KindReplace, Gen: gen, Page: req.page, Result: res, Err: err}
	}
}

// Append requests the next page to concatenate onto the rows. It returns nil
// when a fetch is already in flight or every record is loaded. When the page
// window no longer fits the total (the dataset shrank), page 1 is fetched
// instead and replaces the rows. The page and rows change only when the
// result is applied, so a failed append can be retried without a gap.
func (o *Orchestrator) Append(scrollBack bool) Job {
	loading := o.state.Loading()
	total := o.state.TotalCount()
	loaded := len(o.state.Tasks())
	if loading.Busy() {
		o.log.Logf("[DEBUG] append skipped, %s in flight", loadKind(loading))
		return nil
	}
	if total <= loaded {
		o.log.Logf("[DEBUG] append skipped, %d of %d loaded", loaded, total)
		return nil
	}

	page := o.state.Page()
	next := page
	next.Number++
	restart := page.Stale(total)
	if restart {
		next.Number = 1
	}

	o.gen++
	gen := o.gen
	o.state.BeginLoad(viewstate.LoadMore)
	req := o.capture(next)
	o.log.Logf("[DEBUG] append #%d page=%d/%d restart=%t", gen, next.Number, next.Size, restart)

	p := o.provider
	return func(ctx context.Context) Msg {
		res, err := p.FetchTasks(ctx, req.sort, req.page, req.filters)
		return Msg{Kind: KindAppend, Gen: gen, Page: req.page, Restart: restart, Result: res, Err: err, ScrollBack: scrollBack}
	}
}

// Counts requests the per-status aggregates.
func (o *Orchestrator) Counts() Job {
	o.countGen++
	gen := o.countGen
	p := o.provider
	return func(ctx context.Context) Msg {
		counts, err := p.FetchTaskCounts(ctx)
		return Msg{Kind: KindCounts, Gen: gen, Counts: counts, Err: err}
	}
}

// UpdateStatus requests a status change with an audit comment.
func (o *Orchestrator) UpdateStatus(id string, status taskstore.TaskStatus, comment string) Job {
	p := o.provider
	return func(ctx context.Context) Msg {
		task, err := p.UpdateStatus(ctx, id, status, comment)
		return Msg{Kind: KindUpdate, Task: task, Err: err}
	}
}

// Apply merges a job result into the view state.
func (o *Orchestrator) Apply(msg Msg) Outcome {
	switch msg.Kind {
	case KindReplace, KindAppend:
		return o.applyTasks(msg)
	case KindCounts:
		if msg.Gen != o.countGen {
			return Outcome{Stale: true}
		}
		if msg.Err != nil {
			o.log.Logf("[WARN] fetch counts: %v", msg.Err)
			return Outcome{Err: msg.Err}
		}
		o.state.SetCounts(msg.Counts)
		return Outcome{Changed: true}
	case KindUpdate:
		if msg.Err != nil {
			o.log.Logf("[WARN] update status: %v", msg.Err)
			return Outcome{Err: msg.Err}
		}
		o.state.ReplaceTask(msg.Task)
		o.log.Logf("[INFO] task %s moved to %s", msg.Task.ID, msg.Task.Status)
		return Outcome{Changed: true, Next: o.Counts()}
	default:
		return Outcome{}
	}
}

func (o *Orchestrator) applyTasks(msg Msg) Outcome {
	if msg.Gen != o.gen {
		o.log.Logf("[DEBUG] dropping stale %s #%d, current #%d", msg.Kind, msg.Gen, o.gen)
		return Outcome{Stale: true}
	}
	o.state.EndLoad()

	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			o.log.Logf("[WARN] %s fetch: %v", msg.Kind, msg.Err)
		}
		return Outcome{Err: msg.Err}
	}

	switch {
	case msg.Kind == KindReplace && o.pastLastPage(msg):
		return o.restartPaging(msg)
	case msg.Kind == KindReplace:
		o.state.ReplaceTasks(msg.Result.Tasks, msg.Result.TotalCount)
	case msg.Restart:
		o.state.SetPage(msg.Page)
		o.state.ReplaceTasks(msg.Result.Tasks, msg.Result.TotalCount)
	default:
		o.state.SetPage(msg.Page)
		o.state.AppendTasks(msg.Result.Tasks, msg.Result.TotalCount)
	}
	o.log.Logf("[DEBUG] %s #%d applied, %d of %d loaded", msg.Kind, msg.Gen, len(o.state.Tasks()), o.state.TotalCount())
	return Outcome{Changed: true}
}

// pastLastPage reports whether a paginated replace asked for a window that
// starts beyond the last record.
func (o *Orchestrator) pastLastPage(msg Msg) bool {
	if o.state.InfiniteScroll() || msg.Page.Number <= 1 {
		return false
	}
	return msg.Page.Offset() >= msg.Result.TotalCount
}

// restartPaging moves an out-of-range window back to page 1. With records
// left it refetches; an empty result is already page 1's answer.
func (o *Orchestrator) restartPaging(msg Msg) Outcome {
	first := query.Page{Number: 1, Size: msg.Page.Size}
	o.log.Logf("[INFO] page %d is past %d record(s), back to page 1", msg.Page.Number, msg.Result.TotalCount)
	o.state.SetPage(first)
	if msg.Result.TotalCount == 0 {
		o.state.ReplaceTasks(nil, 0)
		return Outcome{Changed: true}
	}
	return Outcome{Changed: true, Next: o.Replace()}
}

// Busy reports whether a replace or append is in flight.
func (o *Orchestrator) Busy() bool {
	return o.state.Loading().Busy()
}

func loadKind(l viewstate.Loading) string {
	if l.Initial {
		return viewstate.LoadInitial.String()
	}
	return viewstate.LoadMore.String()
}
