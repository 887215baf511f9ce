package report

import (
	"context"
	"math"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	dashboardListSize = 5
	rankingSize       = 10
	bucketCount       = 6
	bucketDays        = 30
)

// Service builds dashboards and reports.
type Service struct {
	repo     Repository
	projects ProjectReader
	logger   *zap.Logger
}

// NewService creates a new report service.
func NewService(repo Repository, projects ProjectReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, projects: projects, logger: logger}
}

// Dashboard builds the overview shown to actor at now.
func (s *Service) Dashboard(ctx context.Context, actor user.Actor, now time.Time) (*Dashboard, error) {
	byState, err := s.repo.CountByState(ctx)
	if err != nil {
		return nil, domainerr.Persistence("count projects by state", err)
	}
	byArea, err := s.repo.TotalsByArea(ctx)
	if err != nil {
		return nil, domainerr.Persistence("count projects by area", err)
	}

	d := &Dashboard{}
	for _, n := range byState {
		d.Total += n
	}
	d.Running = byState[project.StateApproved] + byState[project.StateInExecution]
	d.ByState = stateCounts(byState, d.Total, false)
	d.ByArea = areaCounts(byArea, d.Total, false)

	if d.Owned, err = s.projects.Count(ctx, project.ListOptions{ResponsibleID: actor.UserID}); err != nil {
		return nil, domainerr.Persistence("count owned projects", err)
	}
	if d.Collaborating, err = s.projects.Count(ctx, project.ListOptions{CollaboratorID: actor.UserID}); err != nil {
		return nil, domainerr.Persistence("count shared projects", err)
	}
	if d.Recent, err = s.projects.List(ctx, project.ListOptions{Limit: dashboardListSize}); err != nil {
		return nil, domainerr.Persistence("list recent projects", err)
	}
	today := clock.Today(now)
	if d.Overdue, err = s.projects.List(ctx, project.ListOptions{OverdueAsOf: &today, Limit: dashboardListSize}); err != nil {
		return nil, domainerr.Persistence("list overdue projects", err)
	}
	return d, nil
}

// Summary builds the management report at now. States and areas without
// projects are left out.
func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	byState, err := s.repo.CountByState(ctx)
	if err != nil {
		return nil, domainerr.Persistence("count projects by state", err)
	}
	byArea, err := s.repo.TotalsByArea(ctx)
	if err != nil {
		return nil, domainerr.Persistence("count projects by area", err)
	}

	sum := &Summary{GeneratedAt: now, TotalBudget: decimal.Zero}
	for _, n := range byState {
		sum.Total += n
	}
	for _, t := range byArea {
		sum.TotalBudget = sum.TotalBudget.Add(t.Budget)
	}
	sum.ByState = stateCounts(byState, sum.Total, true)
	sum.ByArea = areaCounts(byArea, sum.Total, true)

	if sum.TopUsers, err = s.repo.TopUsers(ctx, rankingSize); err != nil {
		return nil, domainerr.Persistence("rank users", err)
	}
	if sum.MostDiscussed, err = s.repo.MostDiscussed(ctx, rankingSize); err != nil {
		return nil, domainerr.Persistence("rank projects", err)
	}

	start := now.AddDate(0, 0, -bucketCount*bucketDays)
	created, err := s.repo.CreationTimes(ctx, start)
	if err != nil {
		return nil, domainerr.Persistence("list creation times", err)
	}
	sum.Monthly = buckets(start, created)

	s.logger.Debug("summary built", zap.Int("projects", sum.Total))
	return sum, nil
}

func stateCounts(counts map[project.State]int, total int, skipEmpty bool) []StateCount {
	out := make([]StateCount, 0, len(project.States))
	for _, st := range project.States {
		n := counts[st]
		if skipEmpty && n == 0 {
			continue
		}
		out = append(out, StateCount{State: st, Label: st.Label(), Count: n, Percent: percent(n, total)})
	}
	return out
}

func areaCounts(totals map[user.Area]AreaTotal, total int, skipEmpty bool) []AreaCount {
	out := make([]AreaCount, 0, len(user.Areas))
	for _, a := range user.Areas {
		t := totals[a]
		if skipEmpty && t.Count == 0 {
			continue
		}
		out = append(out, AreaCount{
			Area:    a,
			Label:   a.Label(),
			Count:   t.Count,
			Percent: percent(t.Count, total),
			Budget:  t.Budget,
		})
	}
	return out
}

// percent returns n/total as a percentage rounded to one decimal.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1000) / 10
}

// buckets splits the period after start into consecutive 30-day windows.
func buckets(start time.Time, created []time.Time) []Bucket {
	out := make([]Bucket, bucketCount)
	for i := range out {
		b := Bucket{
			Start: start.AddDate(0, 0, i*bucketDays),
			End:   start.AddDate(0, 0, (i+1)*bucketDays),
		}
		b.Label = b.Start.Format("January 2006")
		for _, t := range created {
			if !t.Before(b.Start) && t.Before(b.End) {
				b.Count++
			}
		}
		out[i] = b
	}
	return out
}
