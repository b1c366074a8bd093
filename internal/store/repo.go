package store

import (
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/rewards"
)

var (
	_ progress.Store = (*Store)(nil)
	_ rewards.Repo   = (*Store)(nil)
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // created >= From
	To     time.Time // created <= To
}

// apply adds the filters in o to sel. Results are newest first.
func (o QueryOpts) apply(sel *entsql.Selector) *entsql.Selector {
	if o.After > 0 {
		sel.Where(entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		sel.Where(entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		sel.Where(entsql.GTE("created_at", o.From.UnixMilli()))
	}
	if !o.To.IsZero() {
		sel.Where(entsql.LTE("created_at", o.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}

// now is the clock used for created_at columns.
var now = time.Now

func millis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }
