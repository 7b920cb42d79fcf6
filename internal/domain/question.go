package domain

// Question is a quiz question embedded in a video's questions array or a
// course's final_quiz array. Questions have no id of their own: they are
// addressed by position in the embedded list, so deleting one shifts the
// indices of everything after it.
type Question struct {
	QuestionAr      string   `bson:"question_ar" json:"questionAr"`
	OptionsAr       []string `bson:"options_ar" json:"optionsAr"`
	CorrectAnswerAr string   `bson:"correct_answer_ar" json:"correctAnswerAr"`
	Score           float64  `bson:"score" json:"score"`
}
