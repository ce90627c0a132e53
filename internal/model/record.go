package model

// Score is one quiz attempt. CourseName holds the module title.
type Score struct {
	CourseName string `bson:"CourseName" json:"CourseName"`
	QuizScore  Number `bson:"QuizScore" json:"QuizScore"`
}

// ScoreRecord accumulates every quiz attempt of one student.
type ScoreRecord struct {
	ID     string  `bson:"_id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Email  string  `bson:"email" json:"email"`
	Scores []Score `bson:"scores,omitempty" json:"scores,omitempty"`
}

// TotalScore sums every attempt; repeated attempts of a module all count.
func (r ScoreRecord) TotalScore() float64 {
	var total float64
	for _, s := range r.Scores {
		total += s.QuizScore.Float64()
	}
	return total
}
