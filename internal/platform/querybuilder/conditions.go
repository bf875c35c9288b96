package querybuilder

type Condition interface {
	write(w *writer)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) write(w *writer) {
	w.sql(c.column, " ", c.op, " ")
	w.arg(c.value)
}

func Eq(column string, value any) Condition  { return compare{column: column, op: "=", value: value} }
func Neq(column string, value any) Condition { return compare{column: column, op: "<>", value: value} }

type in struct {
	column string
	values []any
}

// In renders "column IN (...)". An empty list matches nothing.
func In(column string, values ...any) Condition {
	return in{column: column, values: values}
}

// InStrings is In for a string slice.
func InStrings(column string, values []string) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return in{column: column, values: out}
}

func (c in) write(w *writer) {
	if len(c.values) == 0 {
		w.sql("1=0")
		return
	}
	w.sql(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.sql(", ")
		}
		w.arg(v)
	}
	w.sql(")")
}

type isNull struct {
	column string
}

func IsNull(column string) Condition { return isNull{column: column} }

func (c isNull) write(w *writer) {
	w.sql(c.column, " IS NULL")
}

type rawExpr struct {
	sql  string
	args []any
}

// Expr is a raw predicate with '?' placeholders.
func Expr(sql string, args ...any) Condition {
	return rawExpr{sql: sql, args: args}
}

func (c rawExpr) write(w *writer) {
	w.expr(c.sql, c.args)
}
