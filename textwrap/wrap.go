// Package textwrap 实现块编辑器多行字段的行折算法：
// 按显式换行切分段落，再按空白贪心分词折行。
package textwrap

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultBudget 是每行字符预算的默认值。
const DefaultBudget = 40

// Wrap 将 text 按 budget（每行字符预算）折成显示行序列。
// 约定：
//   - 段落按 '\n' 切分并逐段折行，空段落保留为空行；
//   - 段内按空白逐字符分词，连续空白产生空 token，与普通 token 一样参与拼接；
//   - 行内 token 以单个空格连接；判定使用严格小于（curLen+1+tokLen < budget），
//     因此实际行长最多为 budget-1 个字符；
//   - 单个超长 token 不会被拆开，独占一行；
//   - budget < 1 时回退为 DefaultBudget，函数对任意输入均不失败。
func Wrap(text string, budget int) []string {
	if budget < 1 {
		budget = DefaultBudget
	}

	var rows []string
	for _, para := range strings.Split(text, "\n") {
		tokens := splitSpaces(para)
		cur := tokens[0]
		curLen := utf8.RuneCountInString(cur)
		for _, tok := range tokens[1:] {
			tokLen := utf8.RuneCountInString(tok)
			if curLen+1+tokLen < budget {
				cur += " " + tok
				curLen += 1 + tokLen
			} else {
				rows = append(rows, cur)
				cur = tok
				curLen = tokLen
			}
		}
		rows = append(rows, cur)
	}
	return rows
}

// splitSpaces 以单个空白字符为分隔符切分，保留连续分隔符产生的空 token。
// splitSpaces("") == [""]，与段落切分的空串行为保持一致。
func splitSpaces(s string) []string {
	tokens := []string{}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			tokens = append(tokens, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(tokens, b.String())
}
