package dto

import (
	"jobswipe/internal/domain/target"
	targetuc "jobswipe/internal/usecase/target"
)

type TargetResponse struct {
	Type    string              `json:"type"`
	Vacancy *VacancyResponse    `json:"vacancy,omitempty"`
	Seeker  *SeekerCardResponse `json:"seeker,omitempty"`
}

func NewTargetResponse(t target.Target) TargetResponse {
	res := TargetResponse{Type: string(t.Type)}
	if t.Vacancy != nil {
		v := NewVacancyResponse(*t.Vacancy)
		res.Vacancy = &v
	}
	if t.Seeker != nil {
		s := NewSeekerCardResponse(*t.Seeker)
		res.Seeker = &s
	}
	return res
}

func NewTargetListResponse(items []target.Target) []TargetResponse {
	out := make([]TargetResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTargetResponse(t))
	}
	return out
}

type DeckResponse struct {
	State        string          `json:"state"`
	Index        int             `json:"index"`
	Total        int             `json:"total"`
	Current      *TargetResponse `json:"current"`
	CallToAction *string         `json:"call_to_action"`
}

func NewDeckResponse(v targetuc.DeckView) DeckResponse {
	res := DeckResponse{State: string(v.State), Index: v.Index, Total: v.Total}
	if v.Current != nil {
		cur := NewTargetResponse(*v.Current)
		res.Current = &cur
	}
	if v.CallToAction != "" {
		cta := v.CallToAction
		res.CallToAction = &cta
	}
	return res
}
