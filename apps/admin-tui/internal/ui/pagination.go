package ui

import "fmt"

// DefaultPageSize は一覧画面の1ページあたりの行数。
const DefaultPageSize = 50

// Pagination は一覧画面のページ位置を保持する。
// CurrentPageは1始まり。
type Pagination struct {
	TotalItems  int
	PageSize    int
	CurrentPage int
}

// NewPagination は新しいPaginationを生成する。
func NewPagination(pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pagination{PageSize: pageSize, CurrentPage: 1}
}

// SetTotalItems は総件数を設定し、現在ページを範囲内に収める。
func (p *Pagination) SetTotalItems(total int) {
	p.TotalItems = total
	p.CurrentPage = max(1, min(p.CurrentPage, p.TotalPages()))
}

// TotalPages は総ページ数を返す。0件でも1ページとして扱う。
func (p *Pagination) TotalPages() int {
	if p.TotalItems == 0 {
		return 1
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// StartIndex は現在ページの先頭インデックスを返す。
func (p *Pagination) StartIndex() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// EndIndex は現在ページの終端インデックス（排他的）を返す。
func (p *Pagination) EndIndex() int {
	return min(p.CurrentPage*p.PageSize, p.TotalItems)
}

// NextPage は次のページへ進む。最終ページではfalseを返す。
func (p *Pagination) NextPage() bool {
	if p.CurrentPage >= p.TotalPages() {
		return false
	}
	p.CurrentPage++
	return true
}

// PrevPage は前のページへ戻る。先頭ページではfalseを返す。
func (p *Pagination) PrevPage() bool {
	if p.CurrentPage <= 1 {
		return false
	}
	p.CurrentPage--
	return true
}

// FirstPage は先頭ページへ移動する。絞り込み条件の変更時に使う。
func (p *Pagination) FirstPage() {
	p.CurrentPage = 1
}

// GetPageItems はitemsの総件数をpに反映し、現在ページ分を返す。
func GetPageItems[T any](items []T, p *Pagination) []T {
	p.SetTotalItems(len(items))
	start := p.StartIndex()
	if start >= len(items) {
		return []T{}
	}
	return items[start:p.EndIndex()]
}

// FormatPageInfo は "1-50 of 120 (Page 1/3)" 形式の文字列を返す。
func (p *Pagination) FormatPageInfo() string {
	if p.TotalItems == 0 {
		return "No items"
	}
	return fmt.Sprintf("%d-%d of %d (Page %d/%d)",
		p.StartIndex()+1, p.EndIndex(), p.TotalItems, p.CurrentPage, p.TotalPages())
}
