package dto

import (
	"time"

	"jobswipe/internal/domain/match"

	"github.com/google/uuid"
)

type MatchParticipantResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    *string   `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    *string   `json:"last_name"`
	PhotoURL    *string   `json:"photo_url"`
	CompanyName *string   `json:"company_name"`
}

type MatchVacancyResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	SalaryMin *int      `json:"salary_min"`
	SalaryMax *int      `json:"salary_max"`
}

type MatchResponse struct {
	ID              uuid.UUID                `json:"id"`
	CreatedAt       time.Time                `json:"created_at"`
	ExpiresAt       time.Time                `json:"expires_at"`
	TimeLeftSeconds int64                    `json:"time_left_seconds"`
	IsExpired       bool                     `json:"is_expired"`
	ContactURL      string                   `json:"contact_url"`
	Other           MatchParticipantResponse `json:"other"`
	Vacancy         *MatchVacancyResponse    `json:"vacancy"`
}

func NewMatchResponse(v match.View) MatchResponse {
	res := MatchResponse{
		ID:              v.Match.ID,
		CreatedAt:       v.Match.CreatedAt,
		ExpiresAt:       v.Match.ExpiresAt,
		TimeLeftSeconds: ceilSeconds(v.TimeLeft),
		IsExpired:       v.IsExpired,
		ContactURL:      v.ContactURL,
		Other: MatchParticipantResponse{
			ID:          v.Other.ID,
			Username:    v.Other.Username,
			FirstName:   v.Other.FirstName,
			LastName:    v.Other.LastName,
			PhotoURL:    v.Other.PhotoURL,
			CompanyName: v.Other.CompanyName,
		},
	}
	if v.Vacancy != nil {
		res.Vacancy = &MatchVacancyResponse{
			ID:        v.Vacancy.ID,
			Title:     v.Vacancy.Title,
			City:      v.Vacancy.City,
			SalaryMin: v.Vacancy.SalaryMin,
			SalaryMax: v.Vacancy.SalaryMax,
		}
	}
	return res
}

// ceilSeconds rounds up, so a match still open reports at least one second.
func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}

func NewMatchListResponse(views []match.View) []MatchResponse {
	out := make([]MatchResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewMatchResponse(v))
	}
	return out
}
