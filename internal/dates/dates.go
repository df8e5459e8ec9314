package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ISOLayout 日历日期格式
const ISOLayout = "2006-01-02"

// DefaultTimezone 面包店所在的民用时区
const DefaultTimezone = "America/Sao_Paulo"

var ErrInvalidDate = errors.New("invalid date")

var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// LoadLocation 加载时区，空值使用默认时区
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", name, err)
	}
	return loc, nil
}

// Today 返回指定时区下的当天日期
func Today(loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(ISOLayout)
}

// Parse 解析 ISO 日历日期
func Parse(iso string) (time.Time, error) {
	iso = strings.TrimSpace(iso)
	if !isoPattern.MatchString(iso) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	t, err := time.Parse(ISOLayout, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	return t, nil
}

// IsISODate 判断是否为合法的 YYYY-MM-DD
func IsISODate(value string) bool {
	_, err := Parse(value)
	return err == nil
}

// AddDays 日期加减天数
func AddDays(iso string, days int) (string, error) {
	t, err := Parse(iso)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(ISOLayout), nil
}

// DeriveProductionDate 由交付日期推算生产日期：周一交付提前两天（周日不生产），其他提前一天
func DeriveProductionDate(deliveryISO string) (string, error) {
	t, err := Parse(deliveryISO)
	if err != nil {
		return "", err
	}
	offset := -1
	if t.Weekday() == time.Monday {
		offset = -2
	}
	return t.AddDate(0, 0, offset).Format(ISOLayout), nil
}

// Normalize 去掉外部系统附带的时间部分，仅保留日历日期
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(ISOLayout) {
		return raw[:len(ISOLayout)]
	}
	return raw
}
