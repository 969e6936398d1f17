package db

import (
	"strconv"
	"strings"

	"imobiliaria/internal/domain"
)

// ListQuery assembles a paginated, filtered SELECT plus its matching COUNT.
// Predicates are conjunctive and appended in call order, so building the
// same filter set twice yields byte-identical SQL and identical bound
// arguments. Every value travels as a `?` placeholder; table and column
// names come only from code-side allow-lists, never from request input.
type ListQuery struct {
	table   string
	columns string
	orderBy string
	preds   []string
	args    []any
}

// NewListQuery starts a query against table. orderBy is a fixed recency key
// ("id" or "created_at"); results always come back descending and no
// caller-supplied sort is accepted.
func NewListQuery(table, orderBy, columns string) *ListQuery {
	return &ListQuery{table: table, columns: columns, orderBy: orderBy}
}

// Where appends one predicate with a single bound value, e.g. "type = ?" or
// "price >= ?". Empty string values contribute nothing.
func (q *ListQuery) Where(expr string, arg any) *ListQuery {
	if s, ok := arg.(string); ok && strings.TrimSpace(s) == "" {
		return q
	}
	q.preds = append(q.preds, expr)
	q.args = append(q.args, arg)
	return q
}

// WhereLike appends a contains-match predicate on column.
func (q *ListQuery) WhereLike(column, term string) *ListQuery {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	q.preds = append(q.preds, column+" LIKE ?")
	q.args = append(q.args, "%"+term+"%")
	return q
}

// Search appends a free-text predicate. column "all" (or empty) expands to a
// parenthesized OR group of LIKEs over every allowed column, bound to the
// same term, so the group ANDs with the other filters as a single unit.
// Naming one column restricts the match to it; a column outside the
// allow-list is a validation error, never interpolated.
func (q *ListQuery) Search(term, column string, allowed []string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	bound := "%" + term + "%"

	column = strings.TrimSpace(column)
	if column == "" || strings.EqualFold(column, "all") {
		likes := make([]string, 0, len(allowed))
		for _, col := range allowed {
			likes = append(likes, col+" LIKE ?")
			q.args = append(q.args, bound)
		}
		q.preds = append(q.preds, "("+strings.Join(likes, " OR ")+")")
		return nil
	}

	for _, col := range allowed {
		if col == column {
			q.preds = append(q.preds, col+" LIKE ?")
			q.args = append(q.args, bound)
			return nil
		}
	}
	return domain.ValidationError{Field: "searchColumn", Msg: "coluna de busca não permitida"}
}

func (q *ListQuery) where() string {
	if len(q.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.preds, " AND ")
}

// Count returns the COUNT statement sharing the exact predicate set and
// bound values of List, so total/totalPages always describe the same result
// set the data page was cut from.
func (q *ListQuery) Count() (string, []any) {
	return "SELECT COUNT(*) FROM " + q.table + q.where(), append([]any{}, q.args...)
}

// List returns the page statement: shared predicates, fixed descending
// order, LIMIT/OFFSET bound last.
func (q *ListQuery) List(p Page) (string, []any) {
	sql := "SELECT " + q.columns + " FROM " + q.table + q.where() +
		" ORDER BY " + q.orderBy + " DESC LIMIT ? OFFSET ?"
	args := append([]any{}, q.args...)
	return sql, append(args, p.Limit, p.Offset())
}

// All returns the list statement without a page bound, for exports that
// walk the whole filtered set.
func (q *ListQuery) All() (string, []any) {
	sql := "SELECT " + q.columns + " FROM " + q.table + q.where() +
		" ORDER BY " + q.orderBy + " DESC"
	return sql, append([]any{}, q.args...)
}

// Page is a sanitized page/limit pair.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// DefaultLimit for authenticated/admin listings; public property search
// uses PublicLimit.
const (
	DefaultLimit = 10
	PublicLimit  = 20
)

// ParsePage clamps raw query-string values: page < 1 or non-numeric becomes
// 1, limit < 1 or non-numeric becomes defaultLimit. An inverted or unbounded
// range can never reach the store.
func ParsePage(pageRaw, limitRaw string, defaultLimit int) Page {
	page, err := strconv.Atoi(strings.TrimSpace(pageRaw))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitRaw))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return Page{Page: page, Limit: limit}
}

// PagedResult is the single response envelope for every paginated endpoint.
type PagedResult struct {
	Success    bool `json:"success"`
	Data       any  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
}

func NewPagedResult(data any, total int, p Page) PagedResult {
	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PagedResult{
		Success:    true,
		Data:       data,
		Total:      total,
		Page:       p.Page,
		TotalPages: pages,
	}
}
