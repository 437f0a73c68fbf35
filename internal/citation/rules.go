package citation

import "regexp"

// RulesVersion identifies the heuristic rule set that produced a result.
const RulesVersion = "cn-academic-2025.1"

type Reason string

const (
	Background Reason = "background"
	Definition Reason = "definition"
	Method     Reason = "method"
	Comparison Reason = "comparison"
	Statistic  Reason = "statistic"
)

// ReasonOrder is the fixed evaluation order; the first matching category wins.
var ReasonOrder = []Reason{Background, Definition, Method, Comparison, Statistic}

// QuerySuffix holds the search-query vocabulary for one reason.
type QuerySuffix struct {
	Chinese string
	English string
}

// Rules is the immutable rule table used by Detect.
type Rules struct {
	Version   string
	OwnWork   []*regexp.Regexp
	Triggers  map[Reason][]*regexp.Regexp
	Suffixes  map[Reason]QuerySuffix
	Stopwords map[string]struct{}
}

func DefaultRules() Rules {
	return Rules{
		Version: RulesVersion,
		OwnWork: compileAll(
			`本文(?:提出|设计|构建|采用|实现|发现|研究|认为|首先|将)`,
			`本研究`,
			`本章`,
			`本节`,
			`笔者`,
			`我们(?:提出|发现|设计|构建|认为|证明|实现|采用)`,
			`(?:实验|测试|仿真)结果表明`,
		),
		Triggers: map[Reason][]*regexp.Regexp{
			Background: compileAll(
				`近年来`,
				`近些年`,
				`随着.*?的(?:发展|进步|普及)`,
				`已被广泛(?:应用|使用|采用)`,
				`广泛应用于`,
				`受到.*?(?:关注|重视)`,
				`越来越多的`,
				`日益`,
				`传统的?(?:方法|模型|算法)`,
			),
			Definition: compileAll(
				`是指`,
				`指的是`,
				`(?:被)?定义为`,
				`所谓`,
				`被称为`,
				`的概念`,
			),
			Method: compileAll(
				`(?:采用|基于|利用|使用).*?(?:方法|算法|模型|框架|技术)`,
				`提出了.*?(?:方法|算法|模型|框架)`,
				`通过.*?实现`,
			),
			Comparison: compileAll(
				`相比`,
				`相较于`,
				`优于`,
				`劣于`,
				`不同于`,
				`与.*?相比`,
				`(?:高|低)于`,
			),
			Statistic: compileAll(
				`\d+(?:\.\d+)?\s?[%％]`,
				`\d+(?:\.\d+)?\s?[万亿]`,
				`占比`,
				`比例`,
				`增长了`,
				`数据显示`,
				`统计`,
			),
		},
		Suffixes: map[Reason]QuerySuffix{
			Background: {Chinese: "研究现状", English: "survey"},
			Definition: {Chinese: "定义", English: "definition"},
			Method:     {Chinese: "方法 原理", English: "method"},
			Comparison: {Chinese: "对比 研究", English: "comparison"},
			Statistic:  {Chinese: "统计 数据", English: "statistics"},
		},
		Stopwords: toSet(
			"the", "and", "for", "with", "this", "that", "from", "are", "was", "were",
			"has", "have", "been", "which", "using", "based", "into", "than", "such",
			"its", "their", "these", "those", "not", "can", "all", "also",
		),
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
