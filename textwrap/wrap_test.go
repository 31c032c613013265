package textwrap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestWrapBoundary 验证严格小于的边界判定：2+1+2=5 不满足 <5，满足 <6。
func TestWrapBoundary(t *testing.T) {
	if diff := cmp.Diff([]string{"aa", "bb"}, Wrap("aa bb", 5)); diff != "" {
		t.Fatalf("budget=5 边界判定错误 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"aa bb"}, Wrap("aa bb", 6)); diff != "" {
		t.Fatalf("budget=6 边界判定错误 (-want +got):\n%s", diff)
	}
}

// TestWrapNewlines 验证显式换行与空段落保留。
func TestWrapNewlines(t *testing.T) {
	if diff := cmp.Diff([]string{"a", "", "b"}, Wrap("a\n\nb", 40)); diff != "" {
		t.Fatalf("空段落未保留 (-want +got):\n%s", diff)
	}
}

// TestWrapEmpty 验证空输入产生单个空行。
func TestWrapEmpty(t *testing.T) {
	for _, budget := range []int{1, 5, 40, 1000} {
		got := Wrap("", budget)
		if diff := cmp.Diff([]string{""}, got); diff != "" {
			t.Fatalf("budget=%d 空输入结果错误 (-want +got):\n%s", budget, diff)
		}
	}
}

// TestWrapLongToken 验证超长 token 不拆分、完整独占一行。
func TestWrapLongToken(t *testing.T) {
	long := strings.Repeat("x", 50)
	got := Wrap("a "+long+" b", 10)
	want := []string{"a", long, "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("超长 token 处理错误 (-want +got):\n%s", diff)
	}
}

// TestWrapMaxRowLength 验证实际行长上限为 budget-1。
func TestWrapMaxRowLength(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("ab cde f ", 20))
	const budget = 12
	for _, row := range Wrap(text, budget) {
		if n := len([]rune(row)); n > budget-1 {
			t.Fatalf("行 %q 长度 %d 超过上限 %d", row, n, budget-1)
		}
	}
}

// TestWrapBudgetFallback 验证非正预算回退为默认值。
func TestWrapBudgetFallback(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	want := Wrap(text, DefaultBudget)
	for _, budget := range []int{0, -5} {
		if diff := cmp.Diff(want, Wrap(text, budget)); diff != "" {
			t.Fatalf("budget=%d 未回退到默认值 (-want +got):\n%s", budget, diff)
		}
	}
}

// TestWrapDeterministic 验证同参数多次调用结果一致。
func TestWrapDeterministic(t *testing.T) {
	text := "the quick brown fox\njumps  over\tthe lazy dog"
	first := Wrap(text, 13)
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, Wrap(text, 13)); diff != "" {
			t.Fatalf("第 %d 次调用结果不一致 (-want +got):\n%s", i+2, diff)
		}
	}
}

// TestWrapWhitespaceOnly 验证纯空白输入不会失败：连续分隔符产生空 token。
func TestWrapWhitespaceOnly(t *testing.T) {
	got := Wrap("   ", 40)
	// 三个空格 → 四个空 token，单行拼接后为三个空格。
	if diff := cmp.Diff([]string{"   "}, got); diff != "" {
		t.Fatalf("纯空白输入结果错误 (-want +got):\n%s", diff)
	}
}

// TestWrapIdempotent 验证按行重排的幂等性：把折行结果用 '\n' 连接后
// 以相同预算再折一次，应得到相同序列。
func TestWrapIdempotent(t *testing.T) {
	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"alpha beta\n\ngamma delta epsilon zeta",
		strings.Repeat("word ", 30),
	}
	for _, text := range texts {
		for _, budget := range []int{8, 13, 40} {
			once := Wrap(text, budget)
			twice := Wrap(strings.Join(once, "\n"), budget)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("budget=%d 重排不幂等 (-want +got):\n%s", budget, diff)
			}
		}
	}
}
