package pet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/agent-pet/internal/model"
)

const dayLayout = "2006-01-02"

// HabitLastFood is the pet_habits key recording the most recent food.
const HabitLastFood = "last_food"

// Food is what a food kind is worth.
type Food struct {
	Exp  int
	Mood model.Mood
}

// Foods is the feeding table.
var Foods = map[string]Food{
	"小鱼干": {Exp: 5, Mood: model.MoodHappy},
	"猫粮":  {Exp: 3, Mood: model.MoodSatisfied},
	"糖果":  {Exp: 2, Mood: model.MoodExcited},
	"骨头":  {Exp: 4, Mood: model.MoodHappy},
}

// FoodNames lists the known foods in menu order.
var FoodNames = []string{"小鱼干", "猫粮", "糖果", "骨头"}

var unknownFood = Food{Exp: 1, Mood: model.MoodSatisfied}

// LookupFood returns the table entry for name, or the fallback for unknown food.
func LookupFood(name string) Food {
	if f, ok := Foods[name]; ok {
		return f
	}
	return unknownFood
}

// ErrNoFood is returned by Feed for a blank food name.
var ErrNoFood = errors.New("no food given")

// FullMessage is returned when the pet has been fed MaxFeed times today.
func FullMessage(name string) string {
	return name + "今天已经吃饱啦～"
}

// Feed gives the pet food. Once the daily limit is reached it returns the
// full message and changes nothing.
func (p *Pet) Feed(ctx context.Context, food string) (string, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return "", ErrNoFood
	}
	today := p.now().Format(dayLayout)
	var msg string
	var fed bool

	err := p.mutate(ctx, "feed", func(s *model.PetState) bool {
		if s.FeedDay != today {
			s.FeedCount = 0
			s.FeedDay = today
		}
		if s.FeedCount >= s.MaxFeed {
			msg = FullMessage(s.Name)
			return false
		}

		f := LookupFood(food)
		s.Exp += f.Exp
		s.Mood = f.Mood
		s.FeedCount++
		s.Level = model.LevelFor(s.Exp)
		s.LongTermMemory.PetHabits[HabitLastFood] = food

		msg = fmt.Sprintf("%s吃了%s，经验+%d，现在%s～", s.Name, food, f.Exp, s.Mood.Label())
		fed = true
		return true
	})
	if err != nil {
		return "", err
	}

	p.logger.Debug("feed", zap.String("food", food), zap.Bool("fed", fed))
	return msg, nil
}
