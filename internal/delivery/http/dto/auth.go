package dto

import "jobswipe/internal/usecase/auth"

type TelegramAuthRequest struct {
	InitData string `json:"init_data"`
}

type SessionResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewSessionResponse(s auth.Session) SessionResponse {
	return SessionResponse{User: NewUserResponse(s.User), AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}
