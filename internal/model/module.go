package model

import "sort"

type Lesson struct {
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
}

// Module is one unit of the training course. ModuleNumber orders modules.
type Module struct {
	ID           string   `bson:"_id" json:"id"`
	ModuleNumber Number   `bson:"moduleNumber" json:"moduleNumber"`
	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Lessons      []Lesson `bson:"lessons,omitempty" json:"lessons,omitempty"`
	Timestamps   `bson:",inline"`
}

// LessonCount treats an absent lessons field as empty.
func (m Module) LessonCount() int {
	return len(m.Lessons)
}

// SortModules orders modules by ascending ModuleNumber, keeping document
// order among equal numbers.
func SortModules(modules []Module) {
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].ModuleNumber < modules[j].ModuleNumber
	})
}
