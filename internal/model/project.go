package model

// Project is append-only history: one row per submitted title. The current
// assignment lives in StudentProjectMapping, not here.
//
// swagger:model Project
type Project struct {
	ProjectID    string `gorm:"column:project_id;primaryKey" json:"project_id"`
	Email        string `gorm:"column:email" json:"email"`
	ProjectTitle string `gorm:"column:project_title" json:"project_title"`
	Timestamp    string `gorm:"column:timestamp" json:"timestamp"`
}

func (Project) TableName() string {
	return "projects"
}
