package postgres

import (
	"fmt"
	"strings"

	"exchange-metrics/internal/domain"
)

// whereClause renders a predicate list as a parameterized WHERE body with
// positional placeholders. Column and operator come from the domain's
// closed enumerations; only values are bound as arguments.
func whereClause(preds []domain.Predicate) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(preds))

	for i, p := range preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		args = append(args, p.Value)
		fmt.Fprintf(&sb, "%s %s $%d", p.Column, p.Op, len(args))
	}

	return sb.String(), args
}

// bucketExpr renders the bucket grouping expression for a mode. Five-minute
// buckets offset the truncated hour to the nearest preceding 5-minute mark.
func bucketExpr(mode domain.BucketMode) string {
	if mode == domain.BucketFiveMinute {
		return "date_trunc('hour', timestamp) + interval '1 minute' * (floor(extract(minute from timestamp) / 5) * 5)"
	}
	return "date_trunc('hour', timestamp)"
}
