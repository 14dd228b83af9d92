package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

// columns lista blanca campo del Patch -> columna SQL.
type columns map[string]string

// buildUpdate arma un UPDATE con solo los campos presentes en p. Los argumentos del
// WHERE ocupan $1..$n y los del SET continúan la numeración. updated_at siempre se toca
// cuando hasUpdatedAt es true.
func buildUpdate(table string, allowed columns, p *patch.Patch, hasUpdatedAt bool, where string, whereArgs ...any) (string, []any, error) {
	if p.Empty() {
		return "", nil, fmt.Errorf("update %s: patch vacío: %w", table, domain.ErrInvalidInput)
	}
	args := append([]any{}, whereArgs...)
	sets := make([]string, 0, p.Len()+1)
	for _, f := range p.Fields() {
		col, ok := allowed[f.Name]
		if !ok {
			return "", nil, fmt.Errorf("update %s: campo %q no actualizable: %w", table, f.Name, domain.ErrInvalidInput)
		}
		args = append(args, f.Value)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if hasUpdatedAt {
		sets = append(sets, "updated_at = now()")
	}
	sql := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE " + where
	return sql, args, nil
}
