package notion

import (
	"strings"
)

// QueryRequest 数据库查询请求
type QueryRequest struct {
	Filter      interface{} `json:"filter,omitempty"`
	Sorts       []Sort      `json:"sorts,omitempty"`
	StartCursor string      `json:"start_cursor,omitempty"`
	PageSize    int         `json:"page_size,omitempty"`
}

// Sort 排序条件
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryResponse 查询结果
type QueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Icon 页面图标
type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

// Parent 页面归属
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Page 数据库中的一条记录
type Page struct {
	ID          string                   `json:"id"`
	CreatedTime string                   `json:"created_time,omitempty"`
	Icon        *Icon                    `json:"icon,omitempty"`
	Properties  map[string]PropertyValue `json:"properties"`
}

// CreatePageRequest 创建记录请求，属性使用 map 以便写入 null
type CreatePageRequest struct {
	Parent     Parent                 `json:"parent"`
	Icon       *Icon                  `json:"icon,omitempty"`
	Properties map[string]interface{} `json:"properties"`
}

// RichText 富文本片段
type RichText struct {
	PlainText string `json:"plain_text"`
}

// Option select / status 选项
type Option struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DateValue 日期属性
type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// Formula 公式属性结果
type Formula struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number,omitempty"`
	String *string  `json:"string,omitempty"`
}

// PropertyValue 读取时的属性值
type PropertyValue struct {
	Type        string     `json:"type"`
	Title       []RichText `json:"title,omitempty"`
	RichText    []RichText `json:"rich_text,omitempty"`
	Number      *float64   `json:"number,omitempty"`
	Select      *Option    `json:"select,omitempty"`
	Status      *Option    `json:"status,omitempty"`
	Date        *DateValue `json:"date,omitempty"`
	Checkbox    bool       `json:"checkbox,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Formula     *Formula   `json:"formula,omitempty"`
}

// Database 数据库结构
type Database struct {
	ID         string                      `json:"id"`
	Properties map[string]DatabaseProperty `json:"properties"`
}

// DatabaseProperty 数据库列定义
type DatabaseProperty struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Type   string         `json:"type"`
	Select *OptionsSchema `json:"select,omitempty"`
	Status *OptionsSchema `json:"status,omitempty"`
}

// OptionsSchema 列的可选项
type OptionsSchema struct {
	Options []Option `json:"options"`
}

// SelectOptions 返回 select 或 status 列的选项名
func (db *Database) SelectOptions(property string) []string {
	if db == nil {
		return nil
	}
	prop, ok := db.Properties[property]
	if !ok {
		return nil
	}
	schema := prop.Select
	if schema == nil {
		schema = prop.Status
	}
	if schema == nil {
		return nil
	}
	names := make([]string, 0, len(schema.Options))
	for _, option := range schema.Options {
		if strings.TrimSpace(option.Name) == "" {
			continue
		}
		names = append(names, option.Name)
	}
	return names
}

// PlainText 拼接标题或富文本
func (p PropertyValue) PlainText() string {
	parts := p.Title
	if len(parts) == 0 {
		parts = p.RichText
	}
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.PlainText)
	}
	return sb.String()
}

// TitleText 标题首段文本
func (p PropertyValue) TitleText() string {
	if len(p.Title) == 0 {
		return ""
	}
	return p.Title[0].PlainText
}

// NumberValue 数字或公式数字，缺省为 0
func (p PropertyValue) NumberValue() float64 {
	if p.Type == "formula" {
		if p.Formula != nil && p.Formula.Number != nil {
			return *p.Formula.Number
		}
		return 0
	}
	if p.Number == nil {
		return 0
	}
	return *p.Number
}

// SelectName select 选项名
func (p PropertyValue) SelectName() string {
	if p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// StatusName status 选项名
func (p PropertyValue) StatusName() string {
	if p.Status == nil {
		return ""
	}
	return p.Status.Name
}

// DateStart 日期起点原文
func (p PropertyValue) DateStart() string {
	if p.Date == nil {
		return ""
	}
	return p.Date.Start
}

// Phone 电话
func (p PropertyValue) Phone() string {
	if p.PhoneNumber == nil {
		return ""
	}
	return *p.PhoneNumber
}

// DateFilterRange 日期列闭区间过滤
func DateFilterRange(property, start, end string) map[string]interface{} {
	return map[string]interface{}{
		"and": []interface{}{
			map[string]interface{}{"property": property, "date": map[string]interface{}{"on_or_after": start}},
			map[string]interface{}{"property": property, "date": map[string]interface{}{"on_or_before": end}},
		},
	}
}

// 写入属性值

func TitleProperty(text string) map[string]interface{} {
	return map[string]interface{}{"title": []interface{}{textContent(text)}}
}

func RichTextProperty(text string) map[string]interface{} {
	return map[string]interface{}{"rich_text": []interface{}{textContent(text)}}
}

func NumberProperty(value float64) map[string]interface{} {
	return map[string]interface{}{"number": value}
}

func SelectProperty(name string) map[string]interface{} {
	return map[string]interface{}{"select": map[string]interface{}{"name": name}}
}

func StatusProperty(name string) map[string]interface{} {
	return map[string]interface{}{"status": map[string]interface{}{"name": name}}
}

// DateProperty 空字符串写入 null 以清空日期
func DateProperty(iso string) map[string]interface{} {
	if strings.TrimSpace(iso) == "" {
		return map[string]interface{}{"date": nil}
	}
	return map[string]interface{}{"date": map[string]interface{}{"start": iso}}
}

func CheckboxProperty(value bool) map[string]interface{} {
	return map[string]interface{}{"checkbox": value}
}

func PhoneProperty(phone string) map[string]interface{} {
	return map[string]interface{}{"phone_number": phone}
}

// EmojiIcon emoji 图标
func EmojiIcon(emoji string) *Icon {
	if emoji == "" {
		return nil
	}
	return &Icon{Type: "emoji", Emoji: emoji}
}

func textContent(text string) map[string]interface{} {
	return map[string]interface{}{"text": map[string]interface{}{"content": text}}
}
