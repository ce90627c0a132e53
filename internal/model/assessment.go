package model

type Choice struct {
	Statement string `bson:"statement" json:"statement"`
	IsCorrect bool   `bson:"isCorrect" json:"isCorrect"`
}

type Question struct {
	Statement   string   `bson:"statement" json:"statement"`
	Description string   `bson:"description" json:"description"`
	Choices     []Choice `bson:"choices,omitempty" json:"choices,omitempty"`
}

// Assessment is the quiz attached to a module. Module holds the module
// title, not its identifier.
type Assessment struct {
	ID         string     `bson:"_id" json:"id"`
	Module     string     `bson:"module" json:"module"`
	Questions  []Question `bson:"questions,omitempty" json:"questions,omitempty"`
	Timestamps `bson:",inline"`
}
