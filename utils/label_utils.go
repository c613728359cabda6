package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLabel 标签格式不正确
var ErrInvalidLabel = errors.New("标签格式不正确")

// FormatIdentifier 将标识符数值转换为展示标签：固定前缀 + 零填充数字。
// 纯展示层转换，不携带业务含义，与ParseIdentifier互为逆运算。
func FormatIdentifier(value int64, prefix string, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, value)
}

// ParseIdentifier 将展示标签还原为标识符数值。
// 接受带或不带前缀的输入，允许前导零。
func ParseIdentifier(label string, prefix string) (int64, error) {
	s := strings.TrimSpace(label)
	if prefix != "" && strings.HasPrefix(strings.ToUpper(s), strings.ToUpper(prefix)) {
		s = s[len(prefix):]
	}
	if s == "" {
		return 0, ErrInvalidLabel
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil || value < 1 {
		return 0, ErrInvalidLabel
	}
	return value, nil
}
