package airtable

import (
	"fmt"
	"regexp"
	"strings"
)

// JoinOperator 条件之间的布尔连接符
type JoinOperator string

const (
	JoinAnd JoinOperator = "AND"
	JoinOr  JoinOperator = "OR"
)

// Operator 过滤条件支持的比较操作
type Operator string

const (
	OpEquals       Operator = "="
	OpNotEquals    Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpContains     Operator = "contains"
	OpNotContains  Operator = "not_contains"
	OpStartsWith   Operator = "starts_with"
	OpEndsWith     Operator = "ends_with"

	// 多值字段的集合操作
	OpHasAny Operator = "has_any"
	OpHasAll Operator = "has_all"
	OpNotHas Operator = "not_has"
)

// Condition 结构化过滤条件
// Join 声明与前序结果的连接方式，首个条件的Join被忽略，空值按AND处理
type Condition struct {
	Field    string       `json:"field"`
	Operator Operator     `json:"operator"`
	Value    string       `json:"value"`
	Values   []string     `json:"values,omitempty"`
	Join     JoinOperator `json:"join,omitempty"`
}

var (
	numericValuePattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	fieldRefPattern     = regexp.MustCompile(`\{([^{}]+)\}`)
)

// FormulaFields 提取公式中以 {Field} 形式引用的字段名，去重保序
// 对外部传入的现成公式做schema校验时使用
func FormulaFields(formula string) []string {
	matches := fieldRefPattern.FindAllStringSubmatch(formula, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var fields []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			fields = append(fields, m[1])
		}
	}
	return fields
}

// BuildFilterFormula 将条件列表翻译为表格服务的公式语法
// 从左到右连接，首个条件之后的每一步都包裹为 AND(...)/OR(...)
// 不校验字段名是否存在于目标表，发起真实查询前需另行执行schema校验
func BuildFilterFormula(conditions []Condition) (string, error) {
	if len(conditions) == 0 {
		return "", nil
	}

	formula, err := renderCondition(conditions[0])
	if err != nil {
		return "", err
	}

	for _, cond := range conditions[1:] {
		rendered, err := renderCondition(cond)
		if err != nil {
			return "", err
		}

		join := cond.Join
		if join == "" {
			join = JoinAnd
		}
		if join != JoinAnd && join != JoinOr {
			return "", fmt.Errorf("unsupported join operator: %s", cond.Join)
		}

		formula = fmt.Sprintf("%s(%s, %s)", join, formula, rendered)
	}

	return formula, nil
}

func renderCondition(cond Condition) (string, error) {
	field := fmt.Sprintf("{%s}", cond.Field)

	switch cond.Operator {
	case OpEquals, OpNotEquals, OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		return fmt.Sprintf("%s %s %s", field, cond.Operator, renderValue(cond.Value)), nil
	case OpContains:
		return fmt.Sprintf("FIND(%s, %s) > 0", renderValue(cond.Value), field), nil
	case OpNotContains:
		return fmt.Sprintf("FIND(%s, %s) = 0", renderValue(cond.Value), field), nil
	case OpStartsWith:
		return fmt.Sprintf("LEFT(%s, %d) = %s", field, len(cond.Value), renderValue(cond.Value)), nil
	case OpEndsWith:
		return fmt.Sprintf("RIGHT(%s, %d) = %s", field, len(cond.Value), renderValue(cond.Value)), nil
	case OpHasAny, OpHasAll, OpNotHas:
		return renderSetCondition(cond, field)
	default:
		return "", fmt.Errorf("unsupported operator: %s", cond.Operator)
	}
}

// renderSetCondition 多值字段按 ARRAYJOIN 展开后做子串匹配
func renderSetCondition(cond Condition, field string) (string, error) {
	values := cond.Values
	if len(values) == 0 && cond.Value != "" {
		values = []string{cond.Value}
	}
	if len(values) == 0 {
		return "", fmt.Errorf("set operator %s requires at least one value", cond.Operator)
	}

	joined := fmt.Sprintf("ARRAYJOIN(%s)", field)

	var parts []string
	for _, v := range values {
		switch cond.Operator {
		case OpNotHas:
			parts = append(parts, fmt.Sprintf("FIND(%s, %s) = 0", renderValue(v), joined))
		default:
			parts = append(parts, fmt.Sprintf("FIND(%s, %s) > 0", renderValue(v), joined))
		}
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	switch cond.Operator {
	case OpHasAny:
		return fmt.Sprintf("OR(%s)", strings.Join(parts, ", ")), nil
	default:
		// has_all 与 not_has 的多值形式均要求全部成立
		return fmt.Sprintf("AND(%s)", strings.Join(parts, ", ")), nil
	}
}

// renderValue 数字形态的值不加引号，其余值加引号
func renderValue(value string) string {
	if numericValuePattern.MatchString(value) {
		return value
	}
	escaped := strings.ReplaceAll(value, `"`, `\"`)
	return `"` + escaped + `"`
}
