package model

// Query records one question/response exchange. Name and project title are
// denormalized snapshots taken at submit time. FeedbackRating is set once
// afterwards and stays nil until then.
//
// swagger:model Query
type Query struct {
	QueryID        string `gorm:"column:query_id;primaryKey" json:"query_id"`
	Email          string `gorm:"column:email" json:"email"`
	Name           string `gorm:"column:name" json:"name"`
	ProjectTitle   string `gorm:"column:project_title" json:"project_title"`
	Question       string `gorm:"column:question" json:"question"`
	Response       string `gorm:"column:response" json:"response"`
	Timestamp      string `gorm:"column:timestamp" json:"timestamp"`
	FeedbackRating *int   `gorm:"column:feedback_rating" json:"feedback_rating"`
}

func (Query) TableName() string {
	return "queries"
}
