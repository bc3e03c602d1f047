package models

// Category 是资金条目的类别，取值为封闭集合。
type Category string

const (
	CategoryGovt    Category = "Govt"    // 政府计划
	CategoryVC      Category = "VC"      // 风险投资
	CategoryAngel   Category = "Angel"   // 天使投资
	CategorySubsidy Category = "Subsidy" // 补贴
)

// AllCategories 返回全部类别，顺序与界面中的筛选项一致。
func AllCategories() []Category {
	return []Category{CategoryGovt, CategoryVC, CategoryAngel, CategorySubsidy}
}

// Valid 判断类别是否属于封闭集合。
func (c Category) Valid() bool {
	switch c {
	case CategoryGovt, CategoryVC, CategoryAngel, CategorySubsidy:
		return true
	}
	return false
}

// IsPublic 判断是否属于政府类资金（政府计划与补贴）。
func (c Category) IsPublic() bool {
	return c == CategoryGovt || c == CategorySubsidy
}

// CategoryStyle 描述类别在界面中的颜色与图标。
type CategoryStyle struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryGovt:    {Color: "blue", Icon: "landmark"},
	CategoryVC:      {Color: "purple", Icon: "rocket"},
	CategorySubsidy: {Color: "green", Icon: "zap"},
	CategoryAngel:   {Color: "orange", Icon: "users"},
}

// defaultStyle 用于集合之外的值，例如旧数据中残留的类别。
var defaultStyle = CategoryStyle{Color: "gray", Icon: "circle"}

// Style 返回类别对应的展示样式。
func (c Category) Style() CategoryStyle {
	switch c {
	case CategoryGovt, CategoryVC, CategoryAngel, CategorySubsidy:
		return categoryStyles[c]
	default:
		return defaultStyle
	}
}
