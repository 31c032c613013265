package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Length
	}{
		{"12pt", Length{Value: 12, Unit: UnitPT}},
		{"6mm", Length{Value: 6, Unit: UnitMM}},
		{"1.5cm", Length{Value: 1.5, Unit: UnitCM}},
		{"2in", Length{Value: 2, Unit: UnitIN}},
		{"  4.25 ", Length{Value: 4.25, Unit: UnitNone}},
		{"10 PT", Length{Value: 10, Unit: UnitPT}},
		{"", Length{}},
		{"abc", Length{}},
	}
	for _, tc := range cases {
		if got := Parse(tc.input); got != tc.want {
			t.Errorf("Parse(%q) = %+v, 期望 %+v", tc.input, got, tc.want)
		}
	}
}

func TestConversions(t *testing.T) {
	if got := (Length{Value: 10, Unit: UnitPT}).ToMM(); !almostEqual(got, 10*PtToMm) {
		t.Fatalf("10pt 转 mm 错误: %v", got)
	}
	if got := (Length{Value: 1, Unit: UnitCM}).ToMM(); !almostEqual(got, 10) {
		t.Fatalf("1cm 应为 10mm: %v", got)
	}
	if got := (Length{Value: 1, Unit: UnitIN}).ToMM(); !almostEqual(got, 25.4) {
		t.Fatalf("1in 应为 25.4mm: %v", got)
	}
	if got := (Length{Value: 5, Unit: UnitMM}).ToPT(); !almostEqual(got, 5*MmToPt) {
		t.Fatalf("5mm 转 pt 错误: %v", got)
	}
	// 单位缺省按 mm 处理
	if got := (Length{Value: 7}).ToMM(); !almostEqual(got, 7) {
		t.Fatalf("无单位值应按 mm 处理: %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	mm := 12.7
	pt := (Length{Value: mm, Unit: UnitMM}).ToPT()
	back := (Length{Value: pt, Unit: UnitPT}).ToMM()
	if !almostEqual(back, mm) {
		t.Fatalf("mm↔pt 往返误差过大: %v vs %v", back, mm)
	}
}
