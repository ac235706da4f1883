package ledger

import (
	"sort"

	"github.com/vanshika/fintrace/investigator/internal/domain"
)

// Pagination captures page metadata for the ledger table.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// View is the derived ledger state for one (records, query) pair.
type View struct {
	Query      Query                      `json:"query"`
	Items      []domain.TransactionRecord `json:"items"`
	Pagination Pagination                 `json:"pagination"`
	// Filtered is the complete filtered and sorted set backing Items.
	Filtered []domain.TransactionRecord `json:"-"`
}

// Evaluate filters, sorts and paginates records. It never mutates its input.
func Evaluate(records []domain.TransactionRecord, q Query) View {
	filtered := FilterAndSort(records, q)
	meta := buildPagination(q.Page, len(filtered))
	q.Page = meta.Page

	start := (meta.Page - 1) * PageSize
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	items := []domain.TransactionRecord{}
	if start < end {
		items = append(items, filtered[start:end]...)
	}

	return View{
		Query:      q,
		Items:      items,
		Pagination: meta,
		Filtered:   filtered,
	}
}

// FilterAndSort returns the records passing q, ordered by its sort key. Ties keep input order.
func FilterAndSort(records []domain.TransactionRecord, q Query) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		if q.Matches(r) {
			out = append(out, r)
		}
	}

	ascending := q.SortDirection == Ascending
	if q.SortKey == SortByAmount {
		sort.SliceStable(out, func(i, j int) bool {
			if ascending {
				return out[i].Amount < out[j].Amount
			}
			return out[i].Amount > out[j].Amount
		})
		return out
	}

	type keyed struct {
		record domain.TransactionRecord
		millis int64
	}
	rows := make([]keyed, len(out))
	for i, r := range out {
		rows[i] = keyed{record: r, millis: r.SortMillis()}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return rows[i].millis < rows[j].millis
		}
		return rows[i].millis > rows[j].millis
	})
	for i := range rows {
		out[i] = rows[i].record
	}
	return out
}

// TotalPages is max(1, ceil(n / PageSize)).
func TotalPages(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func buildPagination(page, total int) Pagination {
	totalPages := TotalPages(total)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		PageSize:   PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Engine owns the query for one report's transactions.
type Engine struct {
	records []domain.TransactionRecord
	query   Query
}

// NewEngine creates an engine at the default query.
func NewEngine(records []domain.TransactionRecord) *Engine {
	return &Engine{
		records: append([]domain.TransactionRecord(nil), records...),
		query:   DefaultQuery(),
	}
}

// Load replaces the records and resets the query to defaults.
func (e *Engine) Load(records []domain.TransactionRecord) {
	e.records = append([]domain.TransactionRecord(nil), records...)
	e.query = DefaultQuery()
}

// Records returns the full, unfiltered record list.
func (e *Engine) Records() []domain.TransactionRecord {
	return append([]domain.TransactionRecord(nil), e.records...)
}

// Query returns the current query.
func (e *Engine) Query() Query { return e.query }

// Update applies a transition to the query and clamps the resulting page.
func (e *Engine) Update(fn func(Query) Query) View {
	view := Evaluate(e.records, fn(e.query))
	e.query = view.Query
	return view
}

// SortBy toggles or switches the sort column.
func (e *Engine) SortBy(key SortKey) View {
	return e.Update(func(q Query) Query { return q.SortBy(key) })
}

// GoTo requests a page; out-of-range values are clamped into [1, totalPages].
func (e *Engine) GoTo(page int) View {
	return e.Update(func(q Query) Query { return q.WithPage(page) })
}

// View evaluates the current query.
func (e *Engine) View() View {
	view := Evaluate(e.records, e.query)
	e.query = view.Query
	return view
}
