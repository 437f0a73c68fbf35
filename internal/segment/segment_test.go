package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSingleSentence(t *testing.T) {
	got := Split("近年来，深度学习技术得到了广泛关注。")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
	assert.True(t, strings.HasSuffix(got[0].Text, "。"))
}

func TestSplitKeepsTerminalAndSkipsSemicolon(t *testing.T) {
	got := Split("第一句；仍是第一句。第二句？第三句！尾巴")
	require.Len(t, got, 4)
	assert.Equal(t, "第一句；仍是第一句。", got[0].Text)
	assert.Equal(t, "第二句？", got[1].Text)
	assert.Equal(t, "第三句！", got[2].Text)
	assert.Equal(t, "尾巴", got[3].Text)
}

func TestSplitDropsArtifactsAndHeadings(t *testing.T) {
	got := Split("# 引言\n\n。。好的。\n## 结论")
	require.Len(t, got, 1)
	assert.Equal(t, "好的。", got[0].Text)
	assert.Equal(t, 0, got[0].Index)
}

func TestSplitKeepsFirstSentenceUnderHeading(t *testing.T) {
	got := Split("# 引言\n近年来，深度学习技术得到了广泛关注。\n\n## 1.1 背景\n### 细节\n研究者提出了多种方法。")
	require.Len(t, got, 2)
	assert.Equal(t, "近年来，深度学习技术得到了广泛关注。", got[0].Text)
	assert.Equal(t, "研究者提出了多种方法。", got[1].Text)
	assert.Equal(t, 1, got[1].Index)
}

func TestSplitHeadingOnlyPartDropped(t *testing.T) {
	assert.Empty(t, Split("# 只有标题\n## 另一个标题"))
}

func TestSplitIndicesContiguous(t *testing.T) {
	inputs := []string{
		"",
		"。！？",
		"甲。乙。丙丙。\n\n# 标题\n丁丁！",
		"没有终止符的一段文字",
		"A。BB。C。DD？",
	}
	for _, in := range inputs {
		for i, s := range Split(in) {
			assert.Equal(t, i, s.Index, "input %q", in)
			assert.NotEmpty(t, s.Text)
			assert.GreaterOrEqual(t, utf8.RuneCountInString(s.Text), 2)
		}
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split("   \n\n "))
}
