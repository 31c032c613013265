package field

import (
	"fmt"
	"sort"
	"sync"
)

// TypeMultiline 是多行文本字段在工厂中的注册标签。
const TypeMultiline = "multiline_text"

// Field 是注册表暴露给宿主工厂的最小字段能力。
type Field interface {
	Value() string
	SetValue(v string) error
	DisplayRows() []string
	Resize(m Metrics, meas Measurer) Size
}

// Constructor 按 (初始值, 校验器, 选项记录) 构造一个字段实例。
type Constructor func(initial string, validator Validator, opts Options) (Field, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Constructor{}
)

// Register 以字符串标签注册字段类型，重复注册为编程错误。
func Register(tag string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if tag == "" || ctor == nil {
		panic("field: 注册需要非空标签与构造函数")
	}
	if _, ok := registry[tag]; ok {
		panic(fmt.Sprintf("field: 类型 %s 已注册", tag))
	}
	registry[tag] = ctor
}

// New 按标签与 JSON 选项记录构造字段。
func New(tag string, raw []byte, validator Validator) (Field, error) {
	registryMu.Lock()
	ctor, ok := registry[tag]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("field: 未注册的字段类型 %s", tag)
	}
	opts, err := ParseOptions(raw)
	if err != nil {
		return nil, fmt.Errorf("field: 解析 %s 选项失败: %w", tag, err)
	}
	return ctor(opts.InitialValue(), validator, opts)
}

// NewWithOptions 按标签与已解析的选项构造字段，供上游在构造前改写
// 初始值（如完成数据绑定）时使用。
func NewWithOptions(tag string, initial string, validator Validator, opts Options) (Field, error) {
	registryMu.Lock()
	ctor, ok := registry[tag]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("field: 未注册的字段类型 %s", tag)
	}
	return ctor(initial, validator, opts)
}

// Types 返回已注册的字段类型标签（字典序），便于调试输出。
func Types() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]string, 0, len(registry))
	for tag := range registry {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(TypeMultiline, func(initial string, validator Validator, opts Options) (Field, error) {
		return NewMultiline(initial, validator, opts), nil
	})
}
