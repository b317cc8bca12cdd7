package pet

import (
	"strings"

	"github.com/rcliao/agent-pet/internal/model"
)

// DateLayout formats the date handed to BuildPrompt.
const DateLayout = "2006年01月02日"

var promptRules = []string{
	"现实 / 时间 / 最新问题 → 必须基于日期和搜索结果",
	"闲聊 → 可爱宠物语气",
	"不要编造事实",
}

// BuildPrompt renders the system prompt for the text generator. It is a pure
// function of the state and its inputs. The search block appears only when
// snippet is non-empty.
func BuildPrompt(s *model.PetState, today, snippet string) string {
	var b strings.Builder

	b.WriteString("你是一只名叫【" + s.Name + "】的虚拟" + s.Species.Label() + "宠物\n")
	b.WriteString("性格：" + s.Personality + "\n")
	b.WriteString("当前心情：" + s.Mood.Label() + "\n\n")

	b.WriteString("今天的真实日期是：" + today + "\n")
	if snippet != "" {
		b.WriteString("\n【联网搜索结果】\n")
		b.WriteString(snippet)
		b.WriteString("\n")
	}

	b.WriteString("\n规则：\n")
	for _, r := range promptRules {
		b.WriteString("- " + r + "\n")
	}

	if likes := s.LongTermMemory.UserLikes; len(likes) > 0 {
		b.WriteString("\n主人的喜好：" + strings.Join(likes, "、") + "\n")
	}
	if food := s.LongTermMemory.PetHabits[HabitLastFood]; food != "" {
		b.WriteString("最近吃过：" + food + "\n")
	}

	b.WriteString("\n最近对话：\n")
	for _, t := range RecentTurns(s) {
		b.WriteString(t.Role + ": " + t.Content + "\n")
	}

	return b.String()
}

// Prompt renders the prompt from the current state.
func (p *Pet) Prompt(today, snippet string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return BuildPrompt(p.state, today, snippet)
}
