// Package emotion maps user text to a pet mood and decides whether a reply
// needs fresh external information. Both are fixed keyword lookups.
package emotion

import (
	"strings"

	"github.com/rcliao/agent-pet/internal/model"
)

type rule struct {
	mood     model.Mood
	keywords []string
}

// Checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{model.MoodExcited, []string{"太好了", "激动", "兴奋", "爽爆", "开心死了"}},
	{model.MoodHappy, []string{"开心", "高兴", "快乐", "不错", "很好", "喜欢", "幸福", "爽", "棒"}},
	{model.MoodAngry, []string{"生气", "愤怒", "气死", "讨厌", "烦死了", "受不了"}},
	{model.MoodScared, []string{"害怕", "恐惧", "担心", "焦虑", "紧张", "怕"}},
	{model.MoodSad, []string{"难过", "伤心", "心情不好", "不开心", "郁闷", "倒霉", "烦", "崩溃"}},
}

var searchKeywords = []string{"今天", "几号", "现在", "最新", "新闻", "时间", "发生"}

// Classify returns the mood the text expresses, or neutral if nothing matches.
func Classify(text string) model.Mood {
	text = strings.ToLower(text)
	for _, r := range rules {
		if containsAny(text, r.keywords) {
			return r.mood
		}
	}
	return model.MoodNeutral
}

// NeedsSearch reports whether the text asks about time-sensitive things.
func NeedsSearch(text string) bool {
	return containsAny(text, searchKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
