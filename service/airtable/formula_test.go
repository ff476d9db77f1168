package airtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterFormulaEmpty(t *testing.T) {
	formula, err := BuildFilterFormula(nil)
	require.NoError(t, err)
	assert.Equal(t, "", formula)
}

func TestBuildFilterFormulaSingleCondition(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "Status", Operator: OpEquals, Value: "Active"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{Status} = "Active"`, formula)
}

func TestBuildFilterFormulaNumericValueUnquoted(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "Rating", Operator: OpGreater, Value: "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{Rating} > 4`, formula)

	formula, err = BuildFilterFormula([]Condition{
		{Field: "Score", Operator: OpLessEqual, Value: "-3.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{Score} <= -3.5`, formula)
}

func TestBuildFilterFormulaLeftToRightJoin(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "Status", Operator: OpEquals, Value: "Active"},
		{Field: "Rating", Operator: OpGreater, Value: "4"},
		{Field: "City", Operator: OpEquals, Value: "Beijing", Join: JoinOr},
	})
	require.NoError(t, err)
	assert.Equal(t, `OR(AND({Status} = "Active", {Rating} > 4), {City} = "Beijing")`, formula)
}

func TestBuildFilterFormulaDefaultJoinIsAnd(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "A", Operator: OpEquals, Value: "1"},
		{Field: "B", Operator: OpEquals, Value: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, `AND({A} = 1, {B} = 2)`, formula)
}

func TestBuildFilterFormulaTextOperators(t *testing.T) {
	cases := []struct {
		cond     Condition
		expected string
	}{
		{Condition{Field: "Name", Operator: OpContains, Value: "张"}, `FIND("张", {Name}) > 0`},
		{Condition{Field: "Name", Operator: OpNotContains, Value: "张"}, `FIND("张", {Name}) = 0`},
		{Condition{Field: "Name", Operator: OpStartsWith, Value: "Dr"}, `LEFT({Name}, 2) = "Dr"`},
		{Condition{Field: "Name", Operator: OpEndsWith, Value: "MD"}, `RIGHT({Name}, 2) = "MD"`},
	}
	for _, tc := range cases {
		formula, err := BuildFilterFormula([]Condition{tc.cond})
		require.NoError(t, err)
		assert.Equal(t, tc.expected, formula)
	}
}

func TestBuildFilterFormulaSetOperators(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "Tags", Operator: OpHasAny, Values: []string{"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `OR(FIND("a", ARRAYJOIN({Tags})) > 0, FIND("b", ARRAYJOIN({Tags})) > 0)`, formula)

	formula, err = BuildFilterFormula([]Condition{
		{Field: "Tags", Operator: OpHasAll, Values: []string{"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, `AND(FIND("a", ARRAYJOIN({Tags})) > 0, FIND("b", ARRAYJOIN({Tags})) > 0)`, formula)

	formula, err = BuildFilterFormula([]Condition{
		{Field: "Tags", Operator: OpNotHas, Value: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, `FIND("a", ARRAYJOIN({Tags})) = 0`, formula)
}

func TestBuildFilterFormulaEscapesQuotes(t *testing.T) {
	formula, err := BuildFilterFormula([]Condition{
		{Field: "Note", Operator: OpEquals, Value: `say "hi"`},
	})
	require.NoError(t, err)
	assert.Equal(t, `{Note} = "say \"hi\""`, formula)
}

func TestBuildFilterFormulaUnsupportedOperator(t *testing.T) {
	_, err := BuildFilterFormula([]Condition{
		{Field: "A", Operator: "like", Value: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operator")
}

func TestBuildFilterFormulaUnsupportedJoin(t *testing.T) {
	_, err := BuildFilterFormula([]Condition{
		{Field: "A", Operator: OpEquals, Value: "1"},
		{Field: "B", Operator: OpEquals, Value: "2", Join: "XOR"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported join operator")
}

func TestBuildFilterFormulaDeterministic(t *testing.T) {
	conditions := []Condition{
		{Field: "Status", Operator: OpEquals, Value: "Active"},
		{Field: "Rating", Operator: OpGreater, Value: "4"},
		{Field: "Tags", Operator: OpHasAny, Values: []string{"a", "b"}, Join: JoinOr},
	}

	first, err := BuildFilterFormula(conditions)
	require.NoError(t, err)
	second, err := BuildFilterFormula(conditions)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormulaFields(t *testing.T) {
	assert.Nil(t, FormulaFields(""))
	assert.Equal(t, []string{"Status"}, FormulaFields(`{Status} = "Active"`))
	assert.Equal(t, []string{"Rating", "Status"},
		FormulaFields(`AND({Rating} > 4, OR({Status} = "Active", {Rating} < 10))`))
}

func TestBuildFilterFormulaSetOperatorNeedsValues(t *testing.T) {
	_, err := BuildFilterFormula([]Condition{
		{Field: "Tags", Operator: OpHasAny},
	})
	require.Error(t, err)
}
