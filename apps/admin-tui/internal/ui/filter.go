package ui

import "strings"

// Filter は一覧画面のクライアント側絞り込み条件。
// Columnsはダイアログ表示用のラベルで、照合には使わない。
type Filter struct {
	Query   string
	Active  bool
	Columns []string
}

// NewFilter は新しいFilterを生成する。
func NewFilter(columns ...string) *Filter {
	return &Filter{Columns: columns}
}

// SetQuery は絞り込み文字列を設定する。空白のみの場合は解除する。
func (f *Filter) SetQuery(query string) {
	f.Query = strings.TrimSpace(query)
	f.Active = f.Query != ""
}

// Clear は絞り込みを解除する。
func (f *Filter) Clear() {
	f.SetQuery("")
}

// MatchAny はいずれかの値がクエリを含むかを大文字小文字を区別せずに判定する。
func (f *Filter) MatchAny(values ...string) bool {
	if !f.Active {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// FilterItems はfilterにマッチする要素だけを返す。
func FilterItems[T any](items []T, filter *Filter, getValues func(T) []string) []T {
	if !filter.Active {
		return items
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		if filter.MatchAny(getValues(item)...) {
			result = append(result, item)
		}
	}
	return result
}

// FormatFilterStatus はタイトル表示用の絞り込み状態を返す。
func (f *Filter) FormatFilterStatus() string {
	if !f.Active {
		return ""
	}
	return "Filter: \"" + f.Query + "\""
}

// Label は入力ダイアログのラベルを返す。
func (f *Filter) Label() string {
	if len(f.Columns) == 0 {
		return "Contains:"
	}
	return strings.Join(f.Columns, "/") + " contains:"
}
