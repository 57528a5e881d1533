package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout 出版日期的输出格式
const DateLayout = "2006-01-02"

// 出版日期可接受的输入格式，按顺序尝试
var dateInputLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Date 出版日期
// 反序列化时接受纯日期、不带时区的日期时间和RFC 3339，序列化为2006-01-02
type Date struct {
	time.Time
}

// ParseDate 按dateInputLayouts解析日期字符串
func ParseDate(s string) (Date, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
}

// UnmarshalJSON 实现json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON 实现json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}
