package service

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/pkg/logger"
	"cyberar_admin_backend/pkg/monitoring"
	"cyberar_admin_backend/pkg/tracing"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	LessonsDatasetLabel = "Lessons per Module"
	ScoresDatasetLabel  = "Average Score per Module"
)

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type AssessmentCounter interface {
	Count(ctx context.Context) (int, error)
}

type ModuleLister interface {
	FindAll(ctx context.Context) ([]model.Module, error)
}

type RecordLister interface {
	FindAll(ctx context.Context) ([]model.ScoreRecord, error)
}

// DashboardService derives the dashboard views from a fresh snapshot of the
// store on every call. It keeps no state between calls.
type DashboardService struct {
	Users       UserCounter
	Modules     ModuleLister
	Assessments AssessmentCounter
	Records     RecordLister
}

func NewDashboardService(
	users UserCounter,
	modules ModuleLister,
	assessments AssessmentCounter,
	records RecordLister,
) *DashboardService {
	return &DashboardService{
		Users:       users,
		Modules:     modules,
		Assessments: assessments,
		Records:     records,
	}
}

// GetSummary counts users, modules, lessons and assessments. If any
// collection cannot be read the whole summary fails.
func (s *DashboardService) GetSummary(ctx context.Context) (*model.Summary, error) {
	ctx, span := tracing.Start(ctx, "dashboard.summary")
	defer span.End()

	var (
		summary model.Summary
		modules []model.Module
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalUsers, err = s.Users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		modules, err = s.Modules.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.TotalAssessments, err = s.Assessments.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.TotalModules = len(modules)
	for _, m := range modules {
		summary.TotalLessons += m.LessonCount()
	}
	return &summary, nil
}

// GetLeaderboard ranks every student by the sum of their quiz scores.
// Equal totals are ordered by name, then email.
func (s *DashboardService) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	ctx, span := tracing.Start(ctx, "dashboard.leaderboard")
	defer span.End()

	records, err := s.Records.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(records), nil
}

func BuildLeaderboard(records []model.ScoreRecord) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, model.LeaderboardEntry{
			Name:       r.Name,
			Email:      r.Email,
			TotalScore: r.TotalScore(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Email < b.Email
	})
	return entries
}

// GetLessonsPerModule charts the lesson count of each module by ascending
// module number.
func (s *DashboardService) GetLessonsPerModule(ctx context.Context) (*model.ChartSeries, error) {
	ctx, span := tracing.Start(ctx, "dashboard.lessons_per_module")
	defer span.End()

	modules, err := s.Modules.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	series := BuildLessonsPerModule(modules)
	return &series, nil
}

func BuildLessonsPerModule(modules []model.Module) model.ChartSeries {
	sorted := make([]model.Module, len(modules))
	copy(sorted, modules)
	model.SortModules(sorted)

	labels := make([]string, 0, len(sorted))
	data := make([]float64, 0, len(sorted))
	for _, m := range sorted {
		labels = append(labels, m.Title)
		data = append(data, float64(m.LessonCount()))
	}

	return model.ChartSeries{
		Labels:   labels,
		Datasets: []model.Dataset{{Label: LessonsDatasetLabel, Data: data}},
	}
}

// GetAverageScorePerModule charts the mean quiz score of each module.
// Modules without scores chart as 0. Scores naming no known module are
// dropped and reported through logs and metrics.
func (s *DashboardService) GetAverageScorePerModule(ctx context.Context) (*model.ChartSeries, error) {
	ctx, span := tracing.Start(ctx, "dashboard.average_score_per_module")
	defer span.End()

	// the accumulator is keyed by module title, so modules must be read first
	modules, err := s.Modules.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.Records.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	series, unmatched := BuildAverageScorePerModule(modules, records)
	reportUnmatched(unmatched)
	return &series, nil
}

type scoreAccumulator struct {
	total float64
	count int
}

// BuildAverageScorePerModule returns the chart and the count of dropped
// score entries per unknown course name.
func BuildAverageScorePerModule(modules []model.Module, records []model.ScoreRecord) (model.ChartSeries, map[string]int) {
	sorted := make([]model.Module, len(modules))
	copy(sorted, modules)
	model.SortModules(sorted)

	labels := make([]string, 0, len(sorted))
	acc := make(map[string]*scoreAccumulator, len(sorted))
	for _, m := range sorted {
		if _, seen := acc[m.Title]; seen {
			continue
		}
		acc[m.Title] = &scoreAccumulator{}
		labels = append(labels, m.Title)
	}

	unmatched := make(map[string]int)
	for _, r := range records {
		for _, score := range r.Scores {
			a, ok := acc[score.CourseName]
			if !ok || score.CourseName == "" {
				unmatched[score.CourseName]++
				continue
			}
			a.total += score.QuizScore.Float64()
			a.count++
		}
	}

	data := make([]float64, 0, len(labels))
	for _, title := range labels {
		a := acc[title]
		if a.count == 0 {
			data = append(data, 0)
			continue
		}
		data = append(data, a.total/float64(a.count))
	}

	return model.ChartSeries{
		Labels:   labels,
		Datasets: []model.Dataset{{Label: ScoresDatasetLabel, Data: data}},
	}, unmatched
}

func reportUnmatched(unmatched map[string]int) {
	if len(unmatched) == 0 {
		return
	}

	names := make([]string, 0, len(unmatched))
	dropped := 0
	for name, n := range unmatched {
		names = append(names, name)
		dropped += n
	}
	sort.Strings(names)

	monitoring.UnmatchedScores.Add(float64(dropped))
	logger.Log.Warn("Scores reference unknown modules",
		zap.Strings("courseNames", names),
		zap.Int("dropped", dropped),
	)
}

// GetOverview computes all four views concurrently.
func (s *DashboardService) GetOverview(ctx context.Context) (*model.Overview, error) {
	ctx, span := tracing.Start(ctx, "dashboard.overview")
	defer span.End()

	var (
		summary *model.Summary
		board   []model.LeaderboardEntry
		lessons *model.ChartSeries
		scores  *model.ChartSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = s.GetSummary(gctx)
		return err
	})
	g.Go(func() (err error) {
		board, err = s.GetLeaderboard(gctx)
		return err
	})
	g.Go(func() (err error) {
		lessons, err = s.GetLessonsPerModule(gctx)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.GetAverageScorePerModule(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Overview{
		Summary:          *summary,
		Leaderboard:      board,
		LessonsPerModule: *lessons,
		AverageScores:    *scores,
	}, nil
}
