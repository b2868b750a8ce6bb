package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// BuildDataURI 将原始字节转码为自包含的 data URI
// 格式: data:<mime>;base64,<payload>
func BuildDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI 解析 data URI，返回 mime 类型和原始字节
func ParseDataURI(uri string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("不是合法的 data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")

	idx := strings.Index(rest, ";base64,")
	if idx < 0 {
		return "", nil, fmt.Errorf("缺少 base64 标记")
	}
	mimeType = rest[:idx]

	data, err = base64.StdEncoding.DecodeString(rest[idx+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("base64 解码失败: %v", err)
	}
	return mimeType, data, nil
}

// IsImageMime 判断 MIME 类型是否为图片
func IsImageMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
