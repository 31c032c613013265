package field

import (
	"encoding/json"

	"github.com/ByLCY/blocktext/textwrap"
)

// DefaultMaxDisplayLength 是编辑态测量时单行截断长度的默认值。
const DefaultMaxDisplayLength = 50

// Options 是宿主传入的 JSON 选项记录。
// 可识别键：value/text（初始内容）、maxLineChars（行字符预算）、
// closeOnEnter（回车提交开关）；其余键容忍并忽略。
type Options struct {
	Value        *string `json:"value,omitempty"`
	Text         *string `json:"text,omitempty"`
	MaxLineChars Budget  `json:"maxLineChars,omitempty"`
	CloseOnEnter bool    `json:"closeOnEnter,omitempty"`
	Spellcheck   *bool   `json:"spellcheck,omitempty"`
}

// Budget 包装行字符预算：非数字或非正数的输入静默回退到默认值，
// 解析本身永不报错。
type Budget struct {
	value int
	valid bool
}

// BudgetOf 构造一个显式预算值，非正数视为无效（回退默认）。
func BudgetOf(n int) Budget {
	return Budget{value: n, valid: n >= 1}
}

// UnmarshalJSON implements json.Unmarshaler. Malformed budgets never fail,
// they just fall back to the default.
func (b *Budget) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*b = Budget{}
		return nil
	}
	*b = BudgetOf(int(f))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.OrDefault())
}

// OrDefault 返回有效预算，无效时为 textwrap.DefaultBudget。
func (b Budget) OrDefault() int {
	if b.valid {
		return b.value
	}
	return textwrap.DefaultBudget
}

// Config 是字段构造时一次性固化的不可变配置。
type Config struct {
	Budget           int
	CloseOnEnter     bool
	MaxDisplayLength int
}

// Config 由选项记录推导配置，填入所有默认值。
func (o Options) Config() Config {
	return Config{
		Budget:           o.MaxLineChars.OrDefault(),
		CloseOnEnter:     o.CloseOnEnter,
		MaxDisplayLength: DefaultMaxDisplayLength,
	}
}

// InitialValue 返回初始内容：value 优先于 text，二者皆缺省为空串。
func (o Options) InitialValue() string {
	if o.Value != nil {
		return *o.Value
	}
	if o.Text != nil {
		return *o.Text
	}
	return ""
}

// ParseOptions 解析 JSON 选项记录。记录整体非法时报错；
// 单个键的非法值（如 maxLineChars: "x"）按各键的回退语义处理。
func ParseOptions(raw []byte) (Options, error) {
	var opts Options
	if len(raw) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(raw, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
