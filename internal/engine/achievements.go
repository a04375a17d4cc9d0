package engine

import (
	"time"

	"github.com/mrboora04/focuspoint/internal/types"
)

// Achievement represents a badge earned within a mission.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements a mission has earned.
type AchievementChecker struct {
	mission  types.Mission
	streak   Streak
	progress MissionProgress
}

func NewAchievementChecker(m types.Mission, now time.Time) *AchievementChecker {
	return &AchievementChecker{
		mission:  m,
		streak:   Streaks(m, now),
		progress: Progress(m, now),
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Completed-day milestones
		c.completedDaysAchievement("first_day", "Day One", "Complete your first day", "🌱", 1),
		c.completedDaysAchievement("ten_days", "Double Digits", "Complete 10 days", "📋", 10),
		c.completedDaysAchievement("thirty_days", "Month Strong", "Complete 30 days", "🏅", 30),

		// Streaks
		c.streakAchievement("week_streak", "Week Warrior", "7 completed days in a row", "🔥", 7),
		c.streakAchievement("habit_formed", "Habit Formed", "21 completed days in a row", "🔁", 21),

		c.pointsAchievement("centurion", "Centurion", "Log 100 points", "💯", 100),
		c.noMercyAchievement("iron_will", "Iron Will", "Reach day 7 without using a buffer day", "🛡️", 7),
		c.finishedAchievement("finisher", "Finisher", "Reach the last day of the mission", "🏆"),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) completedDaysAchievement(id, name, desc, icon string, days int) Achievement {
	earned := CountStatus(c.mission, types.DayCompleted) >= days
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, length int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.streak.Best >= length}
}

func (c *AchievementChecker) pointsAchievement(id, name, desc, icon string, points int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: TotalPoints(c.mission) >= points}
}

func (c *AchievementChecker) noMercyAchievement(id, name, desc, icon string, day int) Achievement {
	earned := c.progress.DayNumber >= day && CountStatus(c.mission, types.DaySkipped) == 0
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) finishedAchievement(id, name, desc, icon string) Achievement {
	earned := c.progress.Finished || (c.progress.Started && c.progress.DaysRemaining == 0)
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func Achievements(m types.Mission, now time.Time) []Achievement {
	return NewAchievementChecker(m, now).GetAchievements()
}
