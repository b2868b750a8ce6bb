package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== 默认值 ====================

func TestNewCustomizationSession_Defaults(t *testing.T) {
	sess := NewCustomizationSession("sess-1", 42)

	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "white", sess.ColorKey)
	assert.Equal(t, "M", sess.SizeKey)
	assert.Equal(t, 1, sess.Quantity)
	assert.Nil(t, sess.Artwork)
	assert.Nil(t, sess.Notification)
	assert.False(t, sess.SizeChartVisible)
}

// ==================== 交接前置校验 ====================

func TestCanHandoff_CheckOrder(t *testing.T) {
	artwork := &Artwork{DataURI: "data:image/png;base64,AAAA", FileName: "logo.png"}

	tests := []struct {
		name    string
		mutate  func(*CustomizationSession)
		wantErr error
	}{
		{
			name:    "缺设计图优先报设计图",
			mutate:  func(s *CustomizationSession) { s.ProductName = ""; s.Quantity = 0 },
			wantErr: ErrArtworkMissing,
		},
		{
			name: "有设计图缺名称报名称",
			mutate: func(s *CustomizationSession) {
				s.Artwork = artwork
				s.ProductName = "   "
				s.Quantity = 0
			},
			wantErr: ErrNameMissing,
		},
		{
			name: "有设计图有名称数量不足报数量",
			mutate: func(s *CustomizationSession) {
				s.Artwork = artwork
				s.ProductName = "Logo Tee"
				s.Quantity = 0
			},
			wantErr: ErrQuantityTooLow,
		},
		{
			name: "全部满足",
			mutate: func(s *CustomizationSession) {
				s.Artwork = artwork
				s.ProductName = "Logo Tee"
				s.Quantity = 1
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewCustomizationSession("s", 1)
			tt.mutate(sess)
			assert.Equal(t, tt.wantErr, sess.CanHandoff())
		})
	}
}

// CanContinue 必须与 CanHandoff 前两条规则保持一致
func TestCanContinue_ConsistentWithCanHandoff(t *testing.T) {
	artwork := &Artwork{DataURI: "data:image/png;base64,AAAA"}

	cases := []struct {
		name    string
		artwork *Artwork
		pname   string
	}{
		{"无设计图无名称", nil, ""},
		{"无设计图有名称", nil, "Tee"},
		{"有设计图无名称", artwork, "  "},
		{"有设计图有名称", artwork, "Tee"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewCustomizationSession("s", 1)
			sess.Artwork = tt.artwork
			sess.ProductName = tt.pname

			err := sess.CanHandoff()
			passFirstTwo := err != ErrArtworkMissing && err != ErrNameMissing
			assert.Equal(t, passFirstTwo, sess.CanContinue())
		})
	}
}

// ==================== 载荷组装 ====================

func TestBuildHandoffPayload_TrimsTextFields(t *testing.T) {
	sess := NewCustomizationSession("s", 1)
	sess.Artwork = &Artwork{DataURI: "data:image/png;base64,AAAA", FileName: "logo.png"}
	sess.ProductName = "  Logo Tee  "
	sess.Description = "  nice shirt  "
	sess.ColorKey = "navy"
	sess.SizeKey = "XL"
	sess.Quantity = 3

	payload := sess.BuildHandoffPayload()

	assert.Equal(t, "data:image/png;base64,AAAA", payload.UploadedImage)
	assert.Equal(t, "logo.png", payload.UploadedFileName)
	assert.Equal(t, "navy", payload.SelectedColor)
	assert.Equal(t, "XL", payload.SelectedSize)
	assert.Equal(t, "Logo Tee", payload.Name)
	assert.Equal(t, "nice shirt", payload.Description)
	assert.Equal(t, 3, payload.Quantity)
}

// ==================== 目录 ====================

func TestColorCatalog(t *testing.T) {
	colors := Colors()
	assert.Len(t, colors, 8)

	// 默认色必须在目录内
	white, ok := FindColor(DefaultColorKey)
	assert.True(t, ok)
	assert.Equal(t, "#ffffff", white.Hex)
	// 白色色块需要描边
	assert.Equal(t, "#e5e7eb", white.BorderHex)

	// 未知 key 兜底白色
	assert.Equal(t, "#ffffff", ResolveColorHex("no-such-color"))
	assert.Equal(t, "#1e40af", ResolveColorHex("navy"))
}

func TestSizeCatalog(t *testing.T) {
	assert.Equal(t, []string{"XS", "S", "M", "L", "XL", "XXL"}, Sizes())
	assert.True(t, ValidSize(DefaultSizeKey))
	assert.False(t, ValidSize("XXXL"))
}

func TestSizeChart(t *testing.T) {
	chart := SizeChart()
	assert.Len(t, chart, 4)

	dims := make([]string, 0, len(chart))
	for _, row := range chart {
		dims = append(dims, row.Dimension)
		// 每行覆盖全部尺码
		for _, size := range Sizes() {
			assert.Contains(t, row.Values, size)
		}
	}
	assert.Equal(t, []string{"Shoulder", "Chest", "Sleeve Length", "Front Length"}, dims)

	// 抽查胸围 M 码
	assert.Equal(t, 56.0, chart[1].Values["M"])
}
