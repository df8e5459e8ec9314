package draft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidPayload = errors.New("invalid draft payload")

const maxQuantity = 1_000_000

// UnmarshalJSON 请求体解码：字符串字段接受数字，布尔字段接受 "sim"/"true"，null 视为键不存在
// 数量必须是整数，负数原样保留交给提交校验
func (d *Draft) UnmarshalJSON(data []byte) error {
	out, err := decodeDraft(data, false)
	if err != nil {
		return err
	}
	*d = out
	return nil
}

func decodeDraft(data []byte, lenient bool) (Draft, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	var out Draft
	textFields := []struct {
		key string
		dst **string
	}{
		{key: "atendente", dst: &out.Handler},
		{key: "cliente", dst: &out.CustomerName},
		{key: "telefone", dst: &out.Phone},
		{key: "endereco", dst: &out.Address},
		{key: "dataEntrega", dst: &out.DeliveryDate},
		{key: "dataProducao", dst: &out.ProductionDate},
		{key: "entrega", dst: &out.DeliveryMode},
		{key: "metodoPagamento", dst: &out.PaymentMethod},
		{key: "taxaEntrega", dst: &out.DeliveryFee},
		{key: "observacao", dst: &out.Note},
	}
	for _, field := range textFields {
		value, ok := raw[field.key]
		if !ok || isNull(value) {
			continue
		}
		text, err := decodeText(value)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, field.key, err)
		}
		*field.dst = String(text)
	}
	if value, ok := raw["revenda"]; ok && !isNull(value) {
		flag, err := decodeBool(value)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: revenda: %v", ErrInvalidPayload, err)
		}
		out.IsResale = Bool(flag)
	}
	if value, ok := raw["products"]; ok && !isNull(value) {
		items, err := decodeItems(value, lenient)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: products: %v", ErrInvalidPayload, err)
		}
		out.Items = items
	}
	return out, nil
}

// Decode 按请求体规则解码草稿，空输入返回空草稿
func Decode(data []byte) (Draft, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Draft{}, nil
	}
	return decodeDraft(data, false)
}

// DecodeLenient 解码模型工具参数：小数截断，负数归零
func DecodeLenient(data []byte) (Draft, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Draft{}, nil
	}
	return decodeDraft(data, true)
}

func isNull(value json.RawMessage) bool {
	return string(bytes.TrimSpace(value)) == "null"
}

func decodeText(value json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		return number.String(), nil
	}
	return "", fmt.Errorf("expected string, got %s", string(value))
}

func decodeBool(value json.RawMessage) (bool, error) {
	var flag bool
	if err := json.Unmarshal(value, &flag); err == nil {
		return flag, nil
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "sim", "s", "1", "yes":
			return true, nil
		case "false", "nao", "não", "n", "0", "no", "":
			return false, nil
		}
	}
	var number float64
	if err := json.Unmarshal(value, &number); err == nil {
		return number != 0, nil
	}
	return false, fmt.Errorf("expected boolean, got %s", string(value))
}

func decodeItems(value json.RawMessage, lenient bool) (map[string]int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, fmt.Errorf("expected object: %v", err)
	}
	items := make(map[string]int, len(raw))
	for name, qtyRaw := range raw {
		if isNull(qtyRaw) {
			continue
		}
		qty, err := decodeQuantity(qtyRaw, lenient)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		items[name] = qty
	}
	return items, nil
}

func decodeQuantity(value json.RawMessage, lenient bool) (int, error) {
	var number float64
	if err := json.Unmarshal(value, &number); err != nil {
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return 0, fmt.Errorf("expected number, got %s", string(value))
		}
		text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
		if text == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", text)
		}
		number = parsed
	}
	if math.IsNaN(number) || math.IsInf(number, 0) || math.Abs(number) > maxQuantity {
		return 0, fmt.Errorf("quantity out of range: %s", string(value))
	}
	if !lenient {
		if number != math.Trunc(number) {
			return 0, fmt.Errorf("expected whole number, got %v", number)
		}
		return int(number), nil
	}
	if number < 0 {
		return 0, nil
	}
	return int(math.Trunc(number)), nil
}
