package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course represents a video course. The final exam questions are embedded
// directly in the course document as an array field.
type Course struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TitleAr       string             `bson:"titleAr" json:"titleAr"`
	DescriptionAr string             `bson:"descriptionAr,omitempty" json:"descriptionAr,omitempty"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Instructor    string             `bson:"instructor,omitempty" json:"instructor,omitempty"`
	Published     bool               `bson:"published" json:"published"`
	FinalQuiz     []Question         `bson:"final_quiz" json:"finalQuiz"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
