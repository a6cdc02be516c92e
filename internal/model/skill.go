package model

const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

type Skill struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	PortfolioID uint64  `gorm:"not null;index:idx_skill_portfolio" json:"portfolio_id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Category    string  `gorm:"type:varchar(20);not null" json:"category"` // frontend / backend / devops / database / tools / other
	Proficiency *string `gorm:"type:varchar(20)" json:"proficiency"`
	Level       int     `gorm:"not null;default:1" json:"level"` // 1-5
}

func (Skill) TableName() string {
	return "portfolio_skills"
}
