package model

// ==================== 颜色目录 ====================

// ColorOption T恤颜色选项（固定目录，不由用户创建）
type ColorOption struct {
	Name      string `json:"name"`             // 显示名称
	Key       string `json:"key"`              // 稳定标识，选中态以此比较
	Hex       string `json:"hex"`              // 填充色
	BorderHex string `json:"border,omitempty"` // 浅色色块需要可见描边，仅白色使用
}

// DefaultColorKey 默认选中的颜色
const DefaultColorKey = "white"

// colorCatalog 固定 8 色目录
var colorCatalog = []ColorOption{
	{Name: "White", Key: "white", Hex: "#ffffff", BorderHex: "#e5e7eb"},
	{Name: "Black", Key: "black", Hex: "#000000"},
	{Name: "Navy", Key: "navy", Hex: "#1e40af"},
	{Name: "Red", Key: "red", Hex: "#dc2626"},
	{Name: "Green", Key: "green", Hex: "#16a34a"},
	{Name: "Purple", Key: "purple", Hex: "#9333ea"},
	{Name: "Orange", Key: "orange", Hex: "#ea580c"},
	{Name: "Pink", Key: "pink", Hex: "#ec4899"},
}

// Colors 返回颜色目录副本
func Colors() []ColorOption {
	out := make([]ColorOption, len(colorCatalog))
	copy(out, colorCatalog)
	return out
}

// FindColor 按 key 查找颜色选项
func FindColor(key string) (ColorOption, bool) {
	for _, c := range colorCatalog {
		if c.Key == key {
			return c, true
		}
	}
	return ColorOption{}, false
}

// ResolveColorHex 解析颜色 key 对应的色值
// 正常情况下 key 一定能命中目录；兜底返回白色
func ResolveColorHex(key string) string {
	if c, ok := FindColor(key); ok {
		return c.Hex
	}
	return "#ffffff"
}

// ==================== 尺码目录 ====================

// DefaultSizeKey 默认选中的尺码
const DefaultSizeKey = "M"

// sizeCatalog 固定尺码目录（有序）
var sizeCatalog = []string{"XS", "S", "M", "L", "XL", "XXL"}

// Sizes 返回尺码目录副本
func Sizes() []string {
	out := make([]string, len(sizeCatalog))
	copy(out, sizeCatalog)
	return out
}

// ValidSize 校验尺码 key 是否在目录内
func ValidSize(key string) bool {
	for _, s := range sizeCatalog {
		if s == key {
			return true
		}
	}
	return false
}

// ==================== 尺码表 ====================

// SizeChartRow 尺码表行（单位：厘米）
type SizeChartRow struct {
	Dimension string             `json:"dimension"`
	Values    map[string]float64 `json:"values"` // size key -> cm
}

// sizeChart Oversized T恤测量数据，来自供应商提供的版型表
var sizeChart = []SizeChartRow{
	{Dimension: "Shoulder", Values: map[string]float64{
		"XS": 20, "S": 20.5, "M": 21.5, "L": 21.5, "XL": 22, "XXL": 22.5,
	}},
	{Dimension: "Chest", Values: map[string]float64{
		"XS": 50, "S": 53.6, "M": 56, "L": 56.05, "XL": 59, "XXL": 61.05,
	}},
	{Dimension: "Sleeve Length", Values: map[string]float64{
		"XS": 20, "S": 23, "M": 24, "L": 24.8, "XL": 25, "XXL": 25.4,
	}},
	{Dimension: "Front Length", Values: map[string]float64{
		"XS": 67, "S": 70.5, "M": 73.5, "L": 74.5, "XL": 77, "XXL": 78,
	}},
}

// SizeChart 返回尺码表副本
func SizeChart() []SizeChartRow {
	out := make([]SizeChartRow, len(sizeChart))
	copy(out, sizeChart)
	return out
}
