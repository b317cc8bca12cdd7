package pet

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rcliao/agent-pet/internal/model"
)

func TestBuildPromptWithoutSearch(t *testing.T) {
	s := model.NewPetState("", model.SpeciesCat)
	s.Mood = model.MoodHappy

	got := BuildPrompt(s, "2026年10月19日", "")

	for _, want := range []string{
		"你是一只名叫【奶龙】的虚拟猫宠物",
		"性格：可爱黏人",
		"当前心情：开心",
		"今天的真实日期是：2026年10月19日",
		"- 不要编造事实",
		"最近对话：",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "联网搜索结果") {
		t.Errorf("empty snippet should omit the search block:\n%s", got)
	}
	if strings.Contains(got, "主人的喜好") || strings.Contains(got, "最近吃过") {
		t.Errorf("empty long-term memory should render nothing:\n%s", got)
	}
}

func TestBuildPromptWithSearch(t *testing.T) {
	s := model.NewPetState("", model.SpeciesDog)
	snippet := "新闻A: 摘要一\n新闻B: 摘要二"

	got := BuildPrompt(s, "2026年10月19日", snippet)

	if !strings.Contains(got, "【联网搜索结果】\n"+snippet+"\n") {
		t.Errorf("expected snippet verbatim in labeled block:\n%s", got)
	}
	if !strings.Contains(got, "虚拟狗宠物") || !strings.Contains(got, "热情活泼") {
		t.Errorf("expected dog framing:\n%s", got)
	}
	// search block sits between the date and the rules
	date := strings.Index(got, "今天的真实日期")
	search := strings.Index(got, "【联网搜索结果】")
	rules := strings.Index(got, "规则：")
	if !(date < search && search < rules) {
		t.Errorf("unexpected section order: date=%d search=%d rules=%d", date, search, rules)
	}
}

func TestBuildPromptRendersLastSixTurns(t *testing.T) {
	s := model.NewPetState("", model.SpeciesCat)
	for i := 0; i < 5; i++ {
		remember(s, fmt.Sprintf("问%d", i), fmt.Sprintf("答%d", i))
	}

	got := BuildPrompt(s, "今天", "")

	if strings.Contains(got, "user: 问1") || strings.Contains(got, "pet: 答1") {
		t.Errorf("turns outside the window should not render:\n%s", got)
	}
	tail := "最近对话：\nuser: 问2\npet: 答2\nuser: 问3\npet: 答3\nuser: 问4\npet: 答4\n"
	if !strings.HasSuffix(got, tail) {
		t.Errorf("expected prompt to end with the last six turns:\n%s", got)
	}
}

func TestBuildPromptLongTermMemory(t *testing.T) {
	s := model.NewPetState("", model.SpeciesCat)
	s.LongTermMemory.UserLikes = []string{"晒太阳", "小鱼干"}
	s.LongTermMemory.PetHabits[HabitLastFood] = "猫粮"

	got := BuildPrompt(s, "今天", "")

	if !strings.Contains(got, "主人的喜好：晒太阳、小鱼干") {
		t.Errorf("expected likes line:\n%s", got)
	}
	if !strings.Contains(got, "最近吃过：猫粮") {
		t.Errorf("expected last food line:\n%s", got)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	s := model.NewPetState("", model.SpeciesCat)
	remember(s, "我喜欢鱼", "喵")
	a := BuildPrompt(s, "今天", "x")
	b := BuildPrompt(s.Clone(), "今天", "x")
	if a != b {
		t.Error("same state and inputs produced different prompts")
	}
}

func TestPetPrompt(t *testing.T) {
	p := newTestPet(t, &memStore{})
	if got := p.Prompt("2026年10月19日", ""); !strings.Contains(got, "当前心情：中性") {
		t.Errorf("unexpected prompt:\n%s", got)
	}
}
