package fidelity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumbersNoDigits(t *testing.T) {
	assert.Empty(t, ExtractNumbers("近年来，深度学习技术得到了广泛关注。"))
}

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "percentage wins over decimal", in: "准确率达到95.5%，使用了ResNet-50模型。", want: []string{"95.5%"}},
		{name: "scientific", in: "学习率设为1E-4，共迭代3×10^5次。", want: []string{"1e-4", "3×10^5"}},
		{name: "units", in: "延迟为12 ms，显存占用24GB，温度为37℃。", want: []string{"12ms", "24gb", "37℃"}},
		{name: "trailing zeros stripped", in: "提升了3.0%，达到10.00，另有3.05。", want: []string{"3%", "10", "3.05"}},
		{name: "single digits ignored", in: "见图1和表2，共2023年数据。", want: []string{"2023"}},
		{name: "duplicates collapse", in: "95%与95.0%相同。", want: []string{"95%"}},
		{name: "percentage range keeps both bounds", in: "误差范围为10-20%。", want: []string{"10", "20%"}},
		{name: "year range keeps both bounds", in: "样本覆盖2019-2023年。", want: []string{"2019", "2023"}},
		{name: "decimal range keeps both bounds", in: "取值在3.5-4.2之间。", want: []string{"3.5", "4.2"}},
		{name: "version suffix belongs to identifier", in: "使用v1.5与x86平台，共12台。", want: []string{"12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumbers(tt.in))
		})
	}
}

func TestExtractAcronyms(t *testing.T) {
	got := ExtractAcronyms("使用了ResNet-50模型，并与BERT、GPT-4、PyTorch和LSTM对比。The model is good。")
	assert.Equal(t, []string{"ResNet-50", "BERT", "GPT-4", "PyTorch", "LSTM"}, got)
	assert.Empty(t, ExtractAcronyms("THE AND 正文"))
}

func TestCalculateAcronymDropped(t *testing.T) {
	g := Calculate("准确率达到95.5%，使用了ResNet-50模型。", "准确率达到95.5%。")
	assert.Equal(t, 100.0, g.NumberRetentionRate)
	assert.Equal(t, 0.0, g.AcronymRetentionRate)
	require.Len(t, g.Alerts, 1)
	assert.Equal(t, AcronymChange, g.Alerts[0].Type)
	assert.Equal(t, 0, g.Alerts[0].SentenceIndex)
	assert.Contains(t, g.Alerts[0].Detail, "ResNet-50")
}

func TestCalculateIdenticalTexts(t *testing.T) {
	text := "模型在ImageNet上达到76.1%的准确率。推理耗时15ms，优于CNN基线。"
	g := Calculate(text, text)
	assert.Equal(t, 100.0, g.NumberRetentionRate)
	assert.Equal(t, 100.0, g.AcronymRetentionRate)
	assert.Empty(t, g.Alerts)
}

func TestCalculateEmptyDraft(t *testing.T) {
	g := Calculate("", "任何内容123。")
	assert.Equal(t, 100.0, g.NumberRetentionRate)
	assert.Equal(t, 100.0, g.AcronymRetentionRate)
	assert.Empty(t, g.Alerts)
}

func TestCalculateNumberAndUnitLoss(t *testing.T) {
	draft := "第一句没有数字。样本量为1200个。耗时35ms。"
	g := Calculate(draft, "第一句没有数字。样本量很大。耗时很短。")
	assert.Equal(t, 0.0, g.NumberRetentionRate)
	require.Len(t, g.Alerts, 2)
	assert.Equal(t, Alert{Type: NumberLoss, SentenceIndex: 1, Detail: "missing number: 1200"}, g.Alerts[0])
	assert.Equal(t, Alert{Type: UnitLoss, SentenceIndex: 2, Detail: "missing unit value: 35ms"}, g.Alerts[1])
}

func TestCalculateRangeUpperBoundLost(t *testing.T) {
	g := Calculate("样本覆盖2019-2023年。", "样本覆盖2019年。")
	assert.Equal(t, 50.0, g.NumberRetentionRate)
	require.Len(t, g.Alerts, 1)
	assert.Equal(t, Alert{Type: NumberLoss, SentenceIndex: 0, Detail: "missing number: 2023"}, g.Alerts[0])
}

func TestCalculateUnlocatableToken(t *testing.T) {
	g := Calculate("提升了3.0%。", "有所提升。")
	require.Len(t, g.Alerts, 1)
	assert.Equal(t, -1, g.Alerts[0].SentenceIndex)
}

func TestAlertsCappedPerCategory(t *testing.T) {
	draft := "数值11、22、33、44、55、66、77。模型AA、BB、CC、DD、EE、FF。"
	g := Calculate(draft, "")
	numbers, acronyms := 0, 0
	for _, a := range g.Alerts {
		if a.Type == AcronymChange {
			acronyms++
		} else {
			numbers++
		}
	}
	assert.Equal(t, 5, numbers)
	assert.Equal(t, 5, acronyms)
	assert.Equal(t, 0.0, g.AcronymRetentionRate)
}

func TestPartialRetentionRounded(t *testing.T) {
	g := Calculate("数值11、22、33。", "数值11。")
	assert.Equal(t, 33.3, g.NumberRetentionRate)
}
