package field

import (
	"math"
	"strings"
	"testing"
)

// TestComputeSizeDisplay 验证显示态的高度累加与最宽行取值。
func TestComputeSizeDisplay(t *testing.T) {
	m := Metrics{LineHeight: 5, RowPadding: 1}
	rows := []string{"aaa", "aaaaaa", "a"}
	size := ComputeSize(rows, m, &stubMeasurer{}, false, "", Config{Budget: 40})

	wantH := 3*5.0 + 2*1.0
	if math.Abs(size.Height-wantH) > 1e-9 {
		t.Fatalf("高度错误: got=%g want=%g", size.Height, wantH)
	}
	if math.Abs(size.Width-6) > 1e-9 {
		t.Fatalf("宽度应取最宽行: got=%g want=6", size.Width)
	}
}

// TestComputeSizeBorderPadding 验证装饰边框内边距对称加到两个维度。
func TestComputeSizeBorderPadding(t *testing.T) {
	m := Metrics{LineHeight: 5, RowPadding: 1, BorderPaddingX: 2, BorderPaddingY: 3, Bordered: true}
	plain := ComputeSize([]string{"abc"}, Metrics{LineHeight: 5, RowPadding: 1}, &stubMeasurer{}, false, "", Config{Budget: 40})
	boxed := ComputeSize([]string{"abc"}, m, &stubMeasurer{}, false, "", Config{Budget: 40})

	if math.Abs(boxed.Width-(plain.Width+4)) > 1e-9 {
		t.Fatalf("水平内边距错误: got=%g want=%g", boxed.Width, plain.Width+4)
	}
	if math.Abs(boxed.Height-(plain.Height+6)) > 1e-9 {
		t.Fatalf("垂直内边距错误: got=%g want=%g", boxed.Height, plain.Height+6)
	}
}

// TestEditModeMonotonicWidth 验证编辑态宽度不小于显示态（同值同预算）。
func TestEditModeMonotonicWidth(t *testing.T) {
	meas := &stubMeasurer{}
	m := Metrics{LineHeight: 5, RowPadding: 1}
	values := []string{
		"",
		"short",
		"one two three four five six seven eight",
		strings.Repeat("longtoken", 12),
		"a\n\nb\nccc ddd eee fff",
	}
	for _, value := range values {
		cfg := Config{Budget: 10, MaxDisplayLength: DefaultMaxDisplayLength}
		f := NewMultiline(value, nil, Options{MaxLineChars: BudgetOf(10)})
		display := ComputeSize(f.DisplayRows(), m, meas, false, value, cfg)
		edit := ComputeSize(f.DisplayRows(), m, meas, true, value, cfg)
		if edit.Width < display.Width {
			t.Fatalf("值 %q 编辑态宽度 %g 小于显示态 %g", value, edit.Width, display.Width)
		}
	}
}

// TestEditModeUsesFastMeasure 验证编辑态走快速测量路径。
func TestEditModeUsesFastMeasure(t *testing.T) {
	meas := &stubMeasurer{}
	cfg := Config{Budget: 10, MaxDisplayLength: DefaultMaxDisplayLength}
	ComputeSize([]string{"abc"}, Metrics{LineHeight: 5}, meas, true, "one two three", cfg)
	if meas.fastCalls == 0 {
		t.Fatalf("编辑态未使用快速测量")
	}
}

// TestEditModeTruncation 验证编辑态行按 MaxDisplayLength 截断后测量。
func TestEditModeTruncation(t *testing.T) {
	meas := &stubMeasurer{}
	long := strings.Repeat("x", 200)
	cfg := Config{Budget: 300, MaxDisplayLength: 50}
	size := ComputeSize([]string{""}, Metrics{LineHeight: 5}, meas, true, long, cfg)
	if size.Width > 50 {
		t.Fatalf("编辑态未截断: width=%g", size.Width)
	}
}

// TestEstimatorFallback 验证无测量原语时按显示单元宽度估算，保持全量可用。
func TestEstimatorFallback(t *testing.T) {
	m := Metrics{LineHeight: 5, FontSize: 10}
	size := ComputeSize([]string{"abcd"}, m, nil, false, "", Config{Budget: 40})
	if size.Width <= 0 {
		t.Fatalf("估算宽度应为正: %g", size.Width)
	}
	wide := ComputeSize([]string{"一二三四"}, m, nil, false, "", Config{Budget: 40})
	if wide.Width <= size.Width {
		t.Fatalf("全角字符估算宽度应更大: %g <= %g", wide.Width, size.Width)
	}
}

// TestTruncateRunes 验证按字符截断对多字节文本安全。
func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("一二三四五", 3); got != "一二三" {
		t.Fatalf("截断错误: %q", got)
	}
	if got := TruncateRunes("ab", 5); got != "ab" {
		t.Fatalf("短文本不应截断: %q", got)
	}
	if got := TruncateRunes("abc", 0); got != "abc" {
		t.Fatalf("非正上限应禁用截断: %q", got)
	}
}
