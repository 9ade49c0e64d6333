// Package query implements the pure filter → search → sort pipeline that
// derives the task list view. It never mutates its input and reads no
// ambient state, so it can be re-run on every keystroke and unit-tested
// in isolation.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/taskflow/domain/task"
)

// StatusFilter selects which task states are kept.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterComplete   StatusFilter = "complete"
	FilterIncomplete StatusFilter = "incomplete"
)

// SortBy selects the sort key.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByStatus    SortBy = "status"
	SortByCreatedAt SortBy = "createdAt"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Params are the ephemeral, UI-held query parameters.
type Params struct {
	Status StatusFilter
	Search string
	SortBy SortBy
	Order  SortOrder
}

// Counts holds partition counts over the unfiltered owner task set.
type Counts struct {
	All        int
	Complete   int
	Incomplete int
}

// View applies the status filter, then the case-insensitive substring search,
// then a stable sort, and returns the resulting slice. Ties keep their input
// order in both directions because the comparator is negated for descending
// order, not the final slice.
func View(tasks []task.Task, p Params) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	search := strings.ToLower(p.Search)
	for _, t := range tasks {
		if p.Status != FilterAll && p.Status != "" && string(t.Status) != string(p.Status) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) {
			continue
		}
		out = append(out, t)
	}

	cmp := comparator(p.SortBy)
	desc := p.Order == OrderDesc
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			c = -c
		}
		return c < 0
	})

	return out
}

// Count partitions tasks by status. It always reflects the full set,
// regardless of any active filter or search term.
func Count(tasks []task.Task) Counts {
	c := Counts{All: len(tasks)}
	for _, t := range tasks {
		if t.Status == task.StatusComplete {
			c.Complete++
		} else {
			c.Incomplete++
		}
	}
	return c
}

func comparator(key SortBy) func(a, b task.Task) int {
	switch key {
	case SortByName:
		// Locale-aware ordering, matching what users see in a sorted list.
		col := collate.New(language.Und)
		return func(a, b task.Task) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByStatus:
		return func(a, b task.Task) int {
			return statusRank(a.Status) - statusRank(b.Status)
		}
	default: // SortByCreatedAt
		return func(a, b task.Task) int {
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				return -1
			case a.CreatedAt.After(b.CreatedAt):
				return 1
			default:
				return 0
			}
		}
	}
}

// statusRank orders incomplete before complete in ascending sorts.
func statusRank(s task.Status) int {
	if s == task.StatusIncomplete {
		return 0
	}
	return 1
}
