package store

import (
	"fmt"
	"strings"

	"github.com/devtrackhq/event-tracker/internal/models"
)

// buildListQuery renders the select for a filter, ANDing only the
// constraints that are present and binding every value positionally; filter
// values never end up in the SQL text. Results order by timestamp
// descending; rows with equal timestamps have no guaranteed relative order.
func buildListQuery(f models.EventFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT id, timestamp, source, event_type, data FROM events")

	var conds []string
	var args []any
	if f.Source != "" {
		args = append(args, f.Source)
		conds = append(conds, fmt.Sprintf("source = $%d", len(args)))
	}
	if f.EventType != "" {
		args = append(args, f.EventType)
		conds = append(conds, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY timestamp DESC")

	return sb.String(), args
}
