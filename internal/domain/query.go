package domain

// SeriesQuery is the abstract shape of one series query: conjunctive
// filter predicates plus a bucket mode, always ordered by bucket
// ascending. Store implementations translate it into a parameterized
// query; filter values are bound, never interpolated.
type SeriesQuery struct {
	Symbol     string
	ExchangeID *int64 // nil means all exchanges
	Window     Window
	Bucket     BucketMode
}

// PredicateOp is a comparison operator of a filter predicate.
type PredicateOp string

const (
	OpEq  PredicateOp = "="
	OpGte PredicateOp = ">="
)

// Predicate is one conjunctive filter. Column and Op come from the closed
// sets below, only Value carries caller input.
type Predicate struct {
	Column string
	Op     PredicateOp
	Value  any
}

// Filter column names shared by balance_data and volume_data.
const (
	ColumnSymbol    = "token_symbol"
	ColumnExchange  = "exchange_id"
	ColumnTimestamp = "timestamp"
)

// Predicates returns the filter list in a fixed order: symbol always,
// exchange id when requested, window start when bounded.
func (q SeriesQuery) Predicates() []Predicate {
	preds := []Predicate{{Column: ColumnSymbol, Op: OpEq, Value: q.Symbol}}
	if q.ExchangeID != nil {
		preds = append(preds, Predicate{Column: ColumnExchange, Op: OpEq, Value: *q.ExchangeID})
	}
	if q.Window.Bounded {
		preds = append(preds, Predicate{Column: ColumnTimestamp, Op: OpGte, Value: q.Window.Start})
	}
	return preds
}
