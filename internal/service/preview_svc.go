package service

import (
	"tshirt_studio_v1/internal/model"
)

// ==================== 预览合成模型 ====================

// 印花区域默认位置：水平居中，偏向衣身上半部，大小固定
// 坐标均为相对于衣身画布的比例值 (0~1)
const (
	printBoxX      = 0.30
	printBoxY      = 0.22
	printBoxWidth  = 0.40
	printBoxHeight = 0.35
)

// Rect 相对坐标矩形
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GarmentLayer 衣身底层
type GarmentLayer struct {
	Shape   string `json:"shape"` // 固定为 tshirt 轮廓
	FillHex string `json:"fill_hex"`
}

// OverlayLayer 设计图叠加层
type OverlayLayer struct {
	DataURI string `json:"data_uri"`
	Box     Rect   `json:"box"`  // 印花边界框
	Rect    Rect   `json:"rect"` // 按原图比例 contain 适配后的实际绘制区域
	Fit     string `json:"fit"`  // 固定 contain，不拉伸
}

// RenderDescription 渲染描述，交给展示层绘制
type RenderDescription struct {
	Garment     GarmentLayer  `json:"garment"`
	Overlay     *OverlayLayer `json:"overlay,omitempty"`
	Placeholder bool          `json:"placeholder"` // 无设计图时仅展示占位
}

// ==================== PreviewService 预览派生服务 ====================

// PreviewService 把当前选择状态派生为渲染描述
// 纯函数：相同的会话快照必须得到相同的结果
type PreviewService struct{}

// NewPreviewService 创建预览服务
func NewPreviewService() *PreviewService {
	return &PreviewService{}
}

// Derive 派生渲染描述
func (p *PreviewService) Derive(sess *model.CustomizationSession) RenderDescription {
	desc := RenderDescription{
		Garment: GarmentLayer{
			Shape:   "tshirt",
			FillHex: model.ResolveColorHex(sess.ColorKey),
		},
	}

	if sess.Artwork == nil {
		desc.Placeholder = true
		return desc
	}

	box := Rect{X: printBoxX, Y: printBoxY, Width: printBoxWidth, Height: printBoxHeight}
	desc.Overlay = &OverlayLayer{
		DataURI: sess.Artwork.DataURI,
		Box:     box,
		Rect:    containFit(box, sess.Artwork.Width, sess.Artwork.Height),
		Fit:     "contain",
	}
	return desc
}

// containFit 在边界框内按原图宽高比适配，居中摆放
// 像素尺寸未知时退化为整个边界框
func containFit(box Rect, pxWidth, pxHeight int) Rect {
	if pxWidth <= 0 || pxHeight <= 0 {
		return box
	}

	artRatio := float64(pxWidth) / float64(pxHeight)
	boxRatio := box.Width / box.Height

	fitted := box
	if artRatio >= boxRatio {
		// 宽图：占满宽度，高度按比例缩
		fitted.Height = box.Width / artRatio
		fitted.Y = box.Y + (box.Height-fitted.Height)/2
	} else {
		// 高图：占满高度，宽度按比例缩
		fitted.Width = box.Height * artRatio
		fitted.X = box.X + (box.Width-fitted.Width)/2
	}
	return fitted
}
