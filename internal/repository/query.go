package repository

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"blogHub/internal/pagination"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside an ILIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Query accumulates the WHERE clause of a list query. Conditions are AND-combined and every value
// is passed as a positional argument.
type Query struct {
	conds []string
	args  []interface{}
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) arg(v interface{}) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// Search adds a case-insensitive substring match OR-combined across columns.
func (q *Query) Search(term string, columns ...string) *Query {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}

	placeholder := q.arg("%" + EscapeLike(term) + "%")
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" ILIKE "+placeholder)
	}
	q.conds = append(q.conds, "("+strings.Join(parts, " OR ")+")")
	return q
}

// Eq adds column = value; empty strings are skipped.
func (q *Query) Eq(column string, value interface{}) *Query {
	if s, ok := value.(string); ok && s == "" {
		return q
	}
	q.conds = append(q.conds, column+" = "+q.arg(value))
	return q
}

// Has matches rows whose array column contains value.
func (q *Query) Has(column string, value string) *Query {
	if value == "" {
		return q
	}
	q.conds = append(q.conds, q.arg(value)+" = ANY("+column+")")
	return q
}

// In restricts column to values. A nil slice adds nothing; an empty one matches no rows.
func (q *Query) In(column string, values []string) *Query {
	if values == nil {
		return q
	}
	q.conds = append(q.conds, column+" = ANY("+q.arg(pq.StringArray(values))+")")
	return q
}

func (q *Query) Raw(cond string) *Query {
	q.conds = append(q.conds, cond)
	return q
}

func (q *Query) Where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q *Query) Args() []interface{} {
	return q.args
}

// Page returns the LIMIT/OFFSET clause and the full argument list for the windowed query.
// The receiver's own arguments are left untouched so they can be reused for the COUNT.
func (q *Query) Page(p pagination.Params) (string, []interface{}) {
	args := make([]interface{}, len(q.args), len(q.args)+2)
	copy(args, q.args)
	args = append(args, p.Limit, p.Offset())
	n := len(args)
	return " LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n), args
}

// OrderBy resolves a sort key such as "-createdAt" against the allowed columns. Unknown keys fall
// back to fallback. tiebreak, when set, keeps pages stable across equal sort values.
func OrderBy(sort string, allowed map[string]string, fallback string, tiebreak string) string {
	sort = strings.TrimSpace(sort)
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}

	column, ok := allowed[sort]
	if !ok {
		fallback = strings.TrimSpace(fallback)
		dir = "ASC"
		if strings.HasPrefix(fallback, "-") {
			dir = "DESC"
			fallback = fallback[1:]
		}
		column, ok = allowed[fallback]
		if !ok {
			return ""
		}
	}

	clause := " ORDER BY " + column + " " + dir
	if tiebreak != "" && tiebreak != column {
		clause += ", " + tiebreak + " " + dir
	}
	return clause
}
