package analytics

import (
	"context"
	"fmt"
	"time"

	"studio-site/internal/models"
)

type ProjectStat struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Views     int64  `json:"views"`
	Likes     int64  `json:"likes"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type Summary struct {
	Since          time.Time     `json:"since"`
	PageViews      int64         `json:"page_views"`
	ProjectViews   int64         `json:"project_views"`
	Likes          int64         `json:"likes"`
	UniqueVisitors int64         `json:"unique_visitors"`
	TopProjects    []ProjectStat `json:"top_projects"`
	TopPaths       []PathStat    `json:"top_paths"`
}

// Summary считает агрегаты за период с since; лайки считаются за всё время.
func (r *Recorder) Summary(ctx context.Context, since time.Time, top int) (*Summary, error) {
	if top <= 0 {
		top = 5
	}
	db := r.db.WithContext(ctx)
	s := &Summary{Since: since, TopProjects: []ProjectStat{}, TopPaths: []PathStat{}}

	if err := db.Model(&models.PageView{}).Where("created_at >= ?", since).Count(&s.PageViews).Error; err != nil {
		return nil, fmt.Errorf("count page views: %w", err)
	}
	if err := db.Model(&models.ProjectView{}).Where("created_at >= ?", since).Count(&s.ProjectViews).Error; err != nil {
		return nil, fmt.Errorf("count project views: %w", err)
	}
	if err := db.Model(&models.ProjectLike{}).Count(&s.Likes).Error; err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if err := db.Model(&models.PageView{}).
		Where("created_at >= ?", since).
		Distinct("visitor_id").
		Count(&s.UniqueVisitors).Error; err != nil {
		return nil, fmt.Errorf("count visitors: %w", err)
	}

	if err := db.Model(&models.ProjectView{}).
		Select("project_id, COUNT(*) AS views").
		Where("created_at >= ?", since).
		Group("project_id").
		Order("views desc").
		Limit(top).
		Scan(&s.TopProjects).Error; err != nil {
		return nil, fmt.Errorf("top projects: %w", err)
	}

	for i := range s.TopProjects {
		st := &s.TopProjects[i]
		var p models.Project
		if err := db.Select("id", "title").First(&p, "id = ?", st.ProjectID).Error; err == nil {
			st.Title = p.Title
		}
		st.Likes = r.LikeCount(ctx, st.ProjectID)
	}

	if err := db.Model(&models.PageView{}).
		Select("path, COUNT(*) AS views").
		Where("created_at >= ?", since).
		Group("path").
		Order("views desc").
		Limit(top).
		Scan(&s.TopPaths).Error; err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}

	// пустые списки отдаются как [], не null
	if s.TopProjects == nil {
		s.TopProjects = []ProjectStat{}
	}
	if s.TopPaths == nil {
		s.TopPaths = []PathStat{}
	}
	return s, nil
}
