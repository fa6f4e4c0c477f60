package dto

import "jobswipe/internal/domain/reference"

type ReferenceItemResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func NewCityListResponse(items []reference.City) []ReferenceItemResponse {
	out := make([]ReferenceItemResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ReferenceItemResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

func NewJobCategoryListResponse(items []reference.JobCategory) []ReferenceItemResponse {
	out := make([]ReferenceItemResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ReferenceItemResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
