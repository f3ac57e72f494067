package http

import (
	"time"

	"github.com/archops-lab/dispatchboard/pkg/domain/model"
	"github.com/archops-lab/dispatchboard/pkg/service/report"
	"github.com/archops-lab/dispatchboard/pkg/service/staffing"
	"github.com/archops-lab/dispatchboard/pkg/usecase"
)

type attachmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

type logEntryResponse struct {
	ID          string               `json:"id"`
	Date        string               `json:"date"`
	AuthorID    string               `json:"authorId,omitempty"`
	Author      string               `json:"author"`
	Content     string               `json:"content"`
	Category    string               `json:"category"`
	Attachments []attachmentResponse `json:"attachments,omitempty"`
}

type projectResponse struct {
	ID           string             `json:"id"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	BusinessUnit string             `json:"businessUnit"`
	Manager      string             `json:"manager"`
	ArchitectID  string             `json:"architectId,omitempty"`
	CreatedAt    string             `json:"createdAt"`
	LastActiveAt string             `json:"lastActiveAt"`
	Status       string             `json:"status"`
	Stage        string             `json:"stage"`
	Description  string             `json:"description"`
	Tags         []string           `json:"tags"`
	History      []logEntryResponse `json:"history"`
	AISummary    string             `json:"aiSummary,omitempty"`
}

type personaResponse struct {
	Summary          string   `json:"summary"`
	Domains          []string `json:"domains"`
	WorkStyle        string   `json:"workStyle"`
	ImprovementAreas string   `json:"improvementAreas"`
}

type userResponse struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	Role             string           `json:"role"`
	Title            string           `json:"title"`
	JoinDate         string           `json:"joinDate,omitempty"`
	AvatarURL        string           `json:"avatarUrl,omitempty"`
	Persona          *personaResponse `json:"persona,omitempty"`
	PersonaUpdatedAt string           `json:"personaUpdatedAt,omitempty"`
}

type templateResponse struct {
	ID              string `json:"id"`
	Key             string `json:"key"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Template        string `json:"template"`
	UpdatedAt       string `json:"updatedAt"`
	SystemGenerated bool   `json:"systemGenerated"`
}

type recommendationResponse struct {
	UserID        string `json:"userId"`
	TotalScore    int    `json:"totalScore"`
	Reason        string `json:"reason"`
	WorkloadScore int    `json:"workloadScore"`
	AIScore       int    `json:"aiScore"`
}

type weeklyRowResponse struct {
	ProjectName string `json:"projectName"`
	Stage       string `json:"stage"`
	Work        string `json:"work"`
	Manager     string `json:"manager"`
}

type statsResponse struct {
	TotalProjects int            `json:"totalProjects"`
	ByStatus      map[string]int `json:"byStatus"`
	ByStage       map[string]int `json:"byStage"`
	ByUnit        map[string]int `json:"byUnit"`
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func toLogEntryResponse(e model.LogEntry) logEntryResponse {
	resp := logEntryResponse{
		ID:       e.ID.String(),
		Date:     formatDay(e.Date),
		AuthorID: e.AuthorID.String(),
		Author:   e.Author,
		Content:  e.Content,
		Category: e.Category.String(),
	}
	for _, a := range e.Attachments {
		resp.Attachments = append(resp.Attachments, attachmentResponse{
			ID:   a.ID.String(),
			Name: a.Name,
			Size: a.Size,
			Type: a.Type,
		})
	}
	return resp
}

func toProjectResponse(p *model.Project) projectResponse {
	resp := projectResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		BusinessUnit: p.BusinessUnit,
		Manager:      p.Manager,
		ArchitectID:  p.ArchitectID.String(),
		CreatedAt:    formatDay(p.CreatedAt),
		LastActiveAt: formatDay(p.LastActiveAt),
		Status:       p.Status.String(),
		Stage:        p.Stage.String(),
		Description:  p.Description,
		Tags:         p.Tags,
		History:      make([]logEntryResponse, 0, len(p.History)),
		AISummary:    p.AISummary,
	}
	for _, e := range p.History {
		resp.History = append(resp.History, toLogEntryResponse(e))
	}
	return resp
}

func toUserResponse(u *model.User) userResponse {
	resp := userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Title:     u.Title,
		JoinDate:  u.JoinDate,
		AvatarURL: u.AvatarURL,
	}
	if u.Persona != nil {
		resp.Persona = &personaResponse{
			Summary:          u.Persona.Summary,
			Domains:          u.Persona.Domains,
			WorkStyle:        u.Persona.WorkStyle,
			ImprovementAreas: u.Persona.ImprovementAreas,
		}
	}
	if !u.PersonaUpdatedAt.IsZero() {
		resp.PersonaUpdatedAt = u.PersonaUpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func toTemplateResponse(t *model.PromptTemplate) templateResponse {
	return templateResponse{
		ID:              t.ID.String(),
		Key:             t.Key.String(),
		Name:            t.Name,
		Description:     t.Description,
		Template:        t.Template,
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
		SystemGenerated: t.SystemGenerated,
	}
}

func toRecommendationResponses(recs []*staffing.Recommendation) []recommendationResponse {
	resp := make([]recommendationResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, recommendationResponse{
			UserID:        rec.UserID.String(),
			TotalScore:    rec.TotalScore,
			Reason:        rec.Reason,
			WorkloadScore: rec.WorkloadScore,
			AIScore:       rec.AIScore,
		})
	}
	return resp
}

func toWeeklyRowResponses(rows []report.WeeklyRow) []weeklyRowResponse {
	resp := make([]weeklyRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, weeklyRowResponse{
			ProjectName: row.ProjectName,
			Stage:       row.Stage,
			Work:        row.Work,
			Manager:     row.Manager,
		})
	}
	return resp
}

func toStatsResponse(stats *usecase.DashboardStats) statsResponse {
	resp := statsResponse{
		TotalProjects: stats.TotalProjects,
		ByStatus:      make(map[string]int, len(stats.ByStatus)),
		ByStage:       make(map[string]int, len(stats.ByStage)),
		ByUnit:        stats.ByUnit,
	}
	for status, n := range stats.ByStatus {
		resp.ByStatus[status.String()] = n
	}
	for stage, n := range stats.ByStage {
		resp.ByStage[stage.String()] = n
	}
	return resp
}
