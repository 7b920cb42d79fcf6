package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents a single lesson video inside a course. CourseID is a
// plain string reference; nothing enforces it against the courses
// collection, so deleting a course can orphan its videos.
//
// Order is a 1-based rank within the owning course. The set of orders for
// one course should be dense (1..N, no gaps or duplicates); the invariant is
// checked on read and repaired lazily, never assumed.
type Video struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID      string             `bson:"courseId" json:"courseId"`
	YouTubeID     string             `bson:"youtubeId" json:"videoId"`
	TitleAr       string             `bson:"title_ar" json:"titleAr"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionAr string             `bson:"description_ar,omitempty" json:"descriptionAr,omitempty"`
	Order         int                `bson:"order" json:"order"`
	Questions     []Question         `bson:"questions" json:"questions"`
}
