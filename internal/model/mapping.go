package model

// StudentProjectMapping is the authoritative current assignment: exactly one
// row per student, replaced on every project submission or mapping import.
//
// swagger:model StudentProjectMapping
type StudentProjectMapping struct {
	StudentEmail    string `gorm:"column:student_email;primaryKey" json:"student_email"`
	ProjectTitle    string `gorm:"column:project_title" json:"project_title"`
	MappedTimestamp string `gorm:"column:mapped_timestamp" json:"mapped_timestamp"`
}

func (StudentProjectMapping) TableName() string {
	return "student_project_mapping"
}

// StudentProjectMap is the append-only join history of every project a
// student has ever submitted. It is never consulted for the current
// assignment and its rows survive user deletion.
type StudentProjectMap struct {
	StudentID string `gorm:"column:student_id;primaryKey" json:"student_id"`
	ProjectID string `gorm:"column:project_id;primaryKey" json:"project_id"`
	Timestamp string `gorm:"column:timestamp" json:"timestamp"`
}

func (StudentProjectMap) TableName() string {
	return "student_project_map"
}
