package translate

import "github.com/askdb/askdb/internal/schema"

// PlanJoins produces one JoinSpec per table after the first, in binding
// order. Each new table is probed against every already-placed table for a
// declared relationship; the first hit wins. Tables with no relationship to
// anything placed before them get Known=false, which renders as a comma
// join rather than failing the whole query.
func PlanJoins(tables []string, rels schema.Relationships) []JoinSpec {
	if len(tables) < 2 {
		return nil
	}

	placed := []string{tables[0]}
	joins := make([]JoinSpec, 0, len(tables)-1)

	for _, table := range tables[1:] {
		joins = append(joins, joinFor(table, placed, rels))
		placed = append(placed, table)
	}

	return joins
}

func joinFor(table string, placed []string, rels schema.Relationships) JoinSpec {
	for _, prev := range placed {
		rel, reversed, ok := rels.Between(prev, table)
		if !ok {
			continue
		}

		spec := JoinSpec{Table: table, LeftTable: prev, Known: true}
		if reversed {
			// declared as table_prev: FromColumn lives on table
			spec.LeftColumn = rel.ToColumn
			spec.RightColumn = rel.FromColumn
		} else {
			spec.LeftColumn = rel.FromColumn
			spec.RightColumn = rel.ToColumn
		}

		return spec
	}

	return JoinSpec{Table: table}
}
