package models

// Subscriber is a single mailing list address. Email is a pointer so that a
// form submitted without the field reaches the database as NULL.
type Subscriber struct {
	Email *string `gorm:"column:email;primaryKey;size:255;not null" json:"email"`
}

func (Subscriber) TableName() string {
	return "emails"
}
