package clickhouse

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
		fmt.Fprintf(&sb, "%s %s ?", p.Column, p.Op)
		args = append(args, p.Value)
	}

	return sb.String(), args
}

// bucketExpr renders the bucket grouping expression for a mode. Five-minute
// buckets offset the truncated hour to the nearest preceding 5-minute mark.
func bucketExpr(mode domain.BucketMode) string {
	if mode == domain.BucketFiveMinute {
		return "toStartOfHour(timestamp) + toIntervalMinute(intDiv(toMinute(timestamp), 5) * 5)"
	}
	return "toStartOfHour(timestamp)"
}
