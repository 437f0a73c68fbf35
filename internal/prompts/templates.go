package prompts

import (
	"fmt"
	"strings"
)

const StyleGuideTemplate = `SYSTEM: 你是一名学术写作风格分析专家。
INPUT: %s
TASK: 分析上述范文的写作风格。
OUTPUT: JSON { "averageSentenceLength": number, "lexicalComplexity": number, "passiveVoicePercentage": number, "commonTransitions": string[], "tone": string, "structure": string }`

const DocumentContextTemplate = `SYSTEM: 你是一名学术编辑。
INPUT: %s
TASK: 概括全文主旨，并为每个章节写一句话摘要。
OUTPUT: JSON { "documentSummary": string, "sectionSummaries": string[] }`

const RewriteTemplate = `SYSTEM: 你是一名学术写作编辑，按给定风格改写文本，不得改动数字、单位和专有名词。
STYLE: %s
DOCUMENT: %s
SECTION: %s
BEFORE: %s
AFTER: %s
INPUT: %s
TASK: 输出三个改写版本：conservative（最小改动）、standard（标准）、enhanced（充分改写）。保留 Markdown 标题行。
OUTPUT: JSON { "conservative": string, "standard": string, "enhanced": string }`

func StyleGuidePrompt(sample string) string {
	return strings.TrimSpace(fmt.Sprintf(StyleGuideTemplate, sample))
}

func DocumentContextPrompt(draft string) string {
	return strings.TrimSpace(fmt.Sprintf(DocumentContextTemplate, draft))
}

func RewritePrompt(styleJSON, documentSummary, sectionTitle, before, after, chunk string) string {
	if sectionTitle == "" {
		sectionTitle = "（无）"
	}
	return strings.TrimSpace(fmt.Sprintf(RewriteTemplate, styleJSON, documentSummary, sectionTitle, before, after, chunk))
}
