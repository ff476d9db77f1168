package airtable

import (
	"fmt"
	"strings"
)

// ValidateQueryFields 校验查询引用的字段、排序字段和条件字段都存在于schema
// 在发起真实查询前执行，避免把错误的公式发给上游后得到令人困惑的空结果
// 校验失败时错误信息列出全部合法列名
func ValidateQueryFields(schema *TableSchema, fields []string, sort []SortSpec, conditions []Condition) error {
	valid := make(map[string]bool, len(schema.Fields))
	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		valid[f.Name] = true
		names = append(names, f.Name)
	}

	var unknown []string
	for _, field := range fields {
		if !valid[field] {
			unknown = append(unknown, field)
		}
	}
	for _, s := range sort {
		if !valid[s.Field] {
			unknown = append(unknown, s.Field)
		}
	}
	for _, cond := range conditions {
		if !valid[cond.Field] {
			unknown = append(unknown, cond.Field)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("unknown fields %s in table %s, valid fields are: %s",
			strings.Join(unknown, ", "), schema.Name, strings.Join(names, ", "))
	}
	return nil
}
