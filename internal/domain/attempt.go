package domain

// Attempt type values. Anything that is not "final" is counted as a video
// quiz attempt.
const (
	AttemptTypeVideo = "video"
	AttemptTypeFinal = "final"
)

// QuizAttempt is an append-only record of a user finishing a quiz. It is
// only ever read back for aggregation. Timestamp is untyped for the same
// reason as User timestamps.
type QuizAttempt struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	UserID    string `bson:"userId" json:"userId"`
	Type      string `bson:"type" json:"type"`
	Timestamp any    `bson:"timestamp,omitempty" json:"-"`
}
