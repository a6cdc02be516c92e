package dto

// PortfolioBaseDTO 创建/更新作品集的请求体
type PortfolioBaseDTO struct {
	Name       string              `json:"name" binding:"required" validate:"min=1,max=100"`
	TemplateID uint64              `json:"template_id" binding:"required"`
	Slug       *string             `json:"slug,omitempty"`
	Profile    ProfileDTO          `json:"profile" binding:"required"`
	Settings   *SettingsDTO        `json:"settings,omitempty"`
	Links      []SocialLinkDTO     `json:"links" validate:"max=20"`
	Skills     []SkillDTO          `json:"skills" validate:"max=50"`
	Certs      []CertificationDTO  `json:"certifications" validate:"max=50"`
	Experience []ExperienceDTO     `json:"experience" validate:"max=50"`
	Projects   []ProjectDTO        `json:"projects" validate:"max=50"`
}

type ProfileDTO struct {
	Name         string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Title        string  `json:"title" binding:"required" validate:"min=1,max=200"`
	Bio          string  `json:"bio" binding:"required" validate:"min=1,max=1000"`
	Location     *string `json:"location,omitempty"`
	Email        string  `json:"email" binding:"required" validate:"email"`
	Phone        *string `json:"phone,omitempty"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}

type SettingsDTO struct {
	IsPublic        *bool   `json:"is_public,omitempty"`
	AllowComments   *bool   `json:"allow_comments,omitempty"`
	ShowContactInfo *bool   `json:"show_contact_info,omitempty"`
	CustomDomain    *string `json:"custom_domain,omitempty"`
	SeoTitle        *string `json:"seo_title,omitempty" validate:"omitempty,max=60"`
	SeoDescription  *string `json:"seo_description,omitempty" validate:"omitempty,max=160"`
}

type SocialLinkDTO struct {
	Platform string  `json:"platform" binding:"required" validate:"min=1,max=50"`
	URL      string  `json:"url" binding:"required" validate:"url"`
	Username *string `json:"username,omitempty"`
}

type SkillDTO struct {
	Name        string  `json:"name" binding:"required" validate:"min=1,max=100"`
	Category    string  `json:"category" binding:"required" validate:"oneof=frontend backend devops database tools other"`
	Proficiency *string `json:"proficiency,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Level       int     `json:"level" validate:"omitempty,min=1,max=5"`
}

type CertificationDTO struct {
	Name          string  `json:"name" binding:"required" validate:"min=1,max=200"`
	Provider      string  `json:"provider" binding:"required" validate:"min=1,max=200"`
	IssueDate     *string `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CredentialID  *string `json:"credential_id,omitempty"`
	CredentialURL *string `json:"credential_url,omitempty" validate:"omitempty,url"`
}

type ExperienceDTO struct {
	Title        string   `json:"title" binding:"required" validate:"min=1,max=200"`
	Company      string   `json:"company" binding:"required" validate:"min=1,max=200"`
	Location     *string  `json:"location,omitempty"`
	StartDate    string   `json:"start_date" binding:"required" validate:"datetime=2006-01-02"`
	EndDate      *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent    bool     `json:"is_current"`
	Description  string   `json:"description" validate:"max=2000"`
	Achievements []string `json:"achievements" validate:"max=20"`
	Technologies []string `json:"technologies" validate:"max=30"`
}

type ProjectDTO struct {
	Title         string   `json:"title" binding:"required" validate:"min=1,max=200"`
	Description   string   `json:"description" binding:"required" validate:"min=1,max=2000"`
	Thumbnail     *string  `json:"thumbnail,omitempty"`
	Technologies  []string `json:"technologies" validate:"max=30"`
	DemoURL       *string  `json:"demo_url,omitempty" validate:"omitempty,url"`
	GithubURL     *string  `json:"github_url,omitempty" validate:"omitempty,url"`
	IsFeatured    bool     `json:"is_featured"`
	CompletedDate *string  `json:"completed_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
