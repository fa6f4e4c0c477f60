package match

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ExpiryWindow is how long after creation the participants may get in touch.
const ExpiryWindow = 24 * time.Hour

// Match is written by the store when likes are reciprocal; this service only
// reads it.
type Match struct {
	ID         uuid.UUID
	SeekerID   uuid.UUID
	EmployerID uuid.UUID
	VacancyID  *uuid.UUID
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func (m Match) Participants() [2]uuid.UUID {
	return [2]uuid.UUID{m.SeekerID, m.EmployerID}
}

// Other returns the participant that is not userID.
func (m Match) Other(userID uuid.UUID) uuid.UUID {
	if m.SeekerID == userID {
		return m.EmployerID
	}
	return m.SeekerID
}

type Participant struct {
	ID          uuid.UUID
	TelegramID  int64
	Username    *string
	FirstName   string
	LastName    *string
	PhotoURL    *string
	CompanyName *string
}

type VacancySummary struct {
	ID        uuid.UUID
	Title     string
	City      string
	SalaryMin *int
	SalaryMax *int
}

// Record is a match joined with the counterpart and the vacancy, if any.
type Record struct {
	Match   Match
	Other   Participant
	Vacancy *VacancySummary
}

// View carries the values derived at read time; none of them is stored.
type View struct {
	Record
	TimeLeft   time.Duration
	IsExpired  bool
	ContactURL string
}

// TimeLeft is max(0, expiresAt - now).
func TimeLeft(expiresAt, now time.Time) time.Duration {
	d := expiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// ContactURL is the messaging deep link for a numeric Telegram user id.
func ContactURL(telegramID int64) string {
	if telegramID <= 0 {
		return ""
	}
	return "tg://user?id=" + strconv.FormatInt(telegramID, 10)
}

// NewView derives expiry state. An expired match has no contact link, which
// disables the contact action.
func NewView(r Record, now time.Time) View {
	left := TimeLeft(r.Match.ExpiresAt, now)
	v := View{Record: r, TimeLeft: left, IsExpired: left == 0}
	if !v.IsExpired {
		v.ContactURL = ContactURL(r.Other.TelegramID)
	}
	return v
}

// Event announces a newly created match.
type Event struct {
	MatchID    uuid.UUID  `json:"match_id"`
	SeekerID   uuid.UUID  `json:"seeker_id"`
	EmployerID uuid.UUID  `json:"employer_id"`
	VacancyID  *uuid.UUID `json:"vacancy_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func EventFromMatch(m Match) Event {
	return Event{MatchID: m.ID, SeekerID: m.SeekerID, EmployerID: m.EmployerID, VacancyID: m.VacancyID, CreatedAt: m.CreatedAt}
}
