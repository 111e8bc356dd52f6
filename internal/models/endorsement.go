package models

// SkillEndorsement - подтверждение навыка другим пользователем.
// Стоит эндорсеру CoinCostEndorseSkill монет.
type SkillEndorsement struct {
	BaseModel
	EndorserID string `gorm:"type:uuid;not null;uniqueIndex:idx_endorsements_endorser_user_skill" json:"endorserId"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_endorsements_endorser_user_skill;index" json:"userId"`
	Skill      string `gorm:"not null;uniqueIndex:idx_endorsements_endorser_user_skill" json:"skill"`
}
