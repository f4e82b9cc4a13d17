package keysetpager

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_tConjunct_toSQLClause(t *testing.T) {
	timeNow := time.Now().UTC()

	tests := []struct {
		name     string
		conjunct tConjunct
		wantSQL  string
		wantVars []driver.Value
	}{
		{
			name:     "string less than",
			conjunct: tConjunct{Column: "name", Operator: OperatorLT, Value: StringValue("abc")},
			wantSQL:  "name < ?",
			wantVars: []driver.Value{"abc"},
		},
		{
			name:     "timestamp greater than",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: TimeValue(timeNow)},
			wantSQL:  "created_at > ?",
			wantVars: []driver.Value{timeNow},
		},
		{
			name:     "integer less than",
			conjunct: tConjunct{Column: "id", Operator: OperatorLT, Value: IntValue(10)},
			wantSQL:  "id < ?",
			wantVars: []driver.Value{int64(10)},
		},
		{
			name:     "is null has no placeholder",
			conjunct: tConjunct{Column: "rating", Operator: operatorIsNull},
			wantSQL:  "rating IS NULL",
			wantVars: nil,
		},
		{
			name:     "is not null has no placeholder",
			conjunct: tConjunct{Column: "rating", Operator: operatorIsNotNull},
			wantSQL:  "rating IS NOT NULL",
			wantVars: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVars := tt.conjunct.toSQLClause()
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantVars, gotVars)
		})
	}
}

func Test_tConjunct_toGORMExpression(t *testing.T) {
	expr := tConjunct{Column: "id", Operator: OperatorGT, Value: IntValue(5)}.toGORMExpression()
	clauseExpr, ok := expr.(clause.Expr)
	require.True(t, ok)
	require.Equal(t, "id > ?", clauseExpr.SQL)
	require.Equal(t, []any{int64(5)}, clauseExpr.Vars)

	expr = tConjunct{Column: "rating", Operator: operatorIsNull}.toGORMExpression()
	clauseExpr, ok = expr.(clause.Expr)
	require.True(t, ok)
	require.Equal(t, "rating IS NULL", clauseExpr.SQL)
	require.Empty(t, clauseExpr.Vars)
}

func Test_buildKeysetPredicate(t *testing.T) {
	tests := []struct {
		name     string
		sorts    Orderings
		payload  *Payload
		wantSQL  string
		wantVars []driver.Value
	}{
		{
			name:  "single unique column asc",
			sorts: Orderings{{Column: "id", Direction: DirectionASC}},
			payload: &Payload{K: map[string]Value{
				"id": IntValue(5),
			}},
			wantSQL:  "id > ?",
			wantVars: []driver.Value{int64(5)},
		},
		{
			name:  "single unique column desc",
			sorts: Orderings{{Column: "id", Direction: DirectionDESC}},
			payload: &Payload{K: map[string]Value{
				"id": IntValue(5),
			}},
			wantSQL:  "id < ?",
			wantVars: []driver.Value{int64(5)},
		},
		{
			name: "two columns asc with non-null boundary",
			sorts: Orderings{
				{Column: "created_at", Direction: DirectionASC},
				{Column: "id", Direction: DirectionASC},
			},
			payload: &Payload{K: map[string]Value{
				"created_at": StringValue("2023-01-01"),
				"id":         IntValue(10),
			}},
			wantSQL:  "(created_at > ? OR (created_at = ? AND id > ?))",
			wantVars: []driver.Value{"2023-01-01", "2023-01-01", int64(10)},
		},
		{
			name: "desc non-null boundary includes trailing nulls",
			sorts: Orderings{
				{Column: "rating", Direction: DirectionDESC},
				{Column: "id", Direction: DirectionASC},
			},
			payload: &Payload{K: map[string]Value{
				"rating": FloatValue(4.5),
				"id":     IntValue(3),
			}},
			wantSQL:  "(rating < ? OR (rating = ? AND id > ?) OR rating IS NULL)",
			wantVars: []driver.Value{4.5, 4.5, int64(3)},
		},
		{
			name: "asc null boundary keeps remaining nulls and all non-nulls",
			sorts: Orderings{
				{Column: "rating", Direction: DirectionASC},
				{Column: "id", Direction: DirectionASC},
			},
			payload: &Payload{K: map[string]Value{
				"rating": NullValue,
				"id":     IntValue(3),
			}},
			wantSQL:  "((rating IS NULL AND id > ?) OR rating IS NOT NULL)",
			wantVars: []driver.Value{int64(3)},
		},
		{
			name: "desc null boundary stays inside the null run",
			sorts: Orderings{
				{Column: "rating", Direction: DirectionDESC},
				{Column: "id", Direction: DirectionASC},
			},
			payload: &Payload{K: map[string]Value{
				"rating": NullValue,
				"id":     IntValue(3),
			}},
			wantSQL:  "(rating IS NULL AND id > ?)",
			wantVars: []driver.Value{int64(3)},
		},
		{
			name: "three columns nest recursively",
			sorts: Orderings{
				{Column: "active", Direction: DirectionDESC},
				{Column: "created_at", Direction: DirectionASC},
				{Column: "id", Direction: DirectionASC},
			},
			payload: &Payload{K: map[string]Value{
				"active":     BoolValue(true),
				"created_at": StringValue("2023-01-01"),
				"id":         IntValue(7),
			}},
			wantSQL:  "(active < ? OR (active = ? AND (created_at > ? OR (created_at = ? AND id > ?))) OR active IS NULL)",
			wantVars: []driver.Value{true, true, "2023-01-01", "2023-01-01", int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate, err := buildKeysetPredicate(tt.sorts, tt.payload)
			require.NoError(t, err)

			gotSQL, gotVars := predicate.toSQLClause()
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantVars, gotVars)
		})
	}
}

func Test_buildKeysetPredicate_Errors(t *testing.T) {
	sorts := Orderings{
		{Column: "created_at", Direction: DirectionASC},
		{Column: "id", Direction: DirectionASC},
	}

	t.Run("missing cursor value", func(t *testing.T) {
		payload := &Payload{K: map[string]Value{"created_at": StringValue("2023-01-01")}}

		_, err := buildKeysetPredicate(sorts, payload)
		require.ErrorContains(t, err, `missing cursor value for "id"`)
	})

	t.Run("index out of range", func(t *testing.T) {
		payload := &Payload{K: map[string]Value{}}

		_, err := buildKeysetElement(sorts, payload, len(sorts))
		require.ErrorContains(t, err, "out of range")
	})
}

func Test_buildKeysetPredicate_QualifiedColumnsReadByOutputKey(t *testing.T) {
	sorts := Orderings{
		{Column: "users.created_at", Direction: DirectionASC},
		{Column: "users.id", Direction: DirectionASC},
	}
	payload := &Payload{K: map[string]Value{
		"created_at": StringValue("2023-01-01"),
		"id":         IntValue(1),
	}}

	predicate, err := buildKeysetPredicate(sorts, payload)
	require.NoError(t, err)

	gotSQL, _ := predicate.toSQLClause()
	require.Equal(t, "(users.created_at > ? OR (users.created_at = ? AND users.id > ?))", gotSQL)
}
