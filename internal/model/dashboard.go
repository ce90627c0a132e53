package model

// Summary backs the four dashboard cards.
type Summary struct {
	TotalUsers       int `json:"totalUsers"`
	TotalModules     int `json:"totalModules"`
	TotalLessons     int `json:"totalLessons"`
	TotalAssessments int `json:"totalAssessments"`
}

type LeaderboardEntry struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	TotalScore float64 `json:"totalScore"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartSeries is bar-chart ready: Labels[i] belongs to Datasets[k].Data[i].
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Overview struct {
	Summary          Summary            `json:"summary"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
	LessonsPerModule ChartSeries        `json:"lessonsPerModule"`
	AverageScores    ChartSeries        `json:"averageScores"`
}
