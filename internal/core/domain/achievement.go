package domain

// Achievement IDs. The set is fixed; unlocking is monotonic.
const (
	AchievementFirstGame    = "first_game"
	AchievementSharpShooter = "sharp_shooter"
	AchievementWealthy      = "wealthy"
)

// Achievement is a named unlock flag on an account.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// Unlock marks the achievement with the given id as unlocked. Returns true
// when this call changed the flag; an already-unlocked achievement is left
// untouched.
func (s *WalletStats) Unlock(id string) bool {
	for i := range s.Achievements {
		if s.Achievements[i].ID == id && !s.Achievements[i].Unlocked {
			s.Achievements[i].Unlocked = true
			return true
		}
	}
	return false
}

// DefaultAchievements returns the locked achievement set for a new account.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementFirstGame, Title: "নতুন যাত্রী", Description: "প্রথম গেম সম্পন্ন করেছেন", Icon: "🐣"},
		{ID: AchievementSharpShooter, Title: "শার্প শুটার", Description: "টানা ১০টি সঠিক উত্তর", Icon: "🎯"},
		{ID: AchievementWealthy, Title: "বড়লোক", Description: "৫০ টাকা আয় করেছেন", Icon: "💰"},
	}
}
