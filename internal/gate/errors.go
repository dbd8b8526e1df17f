package gate

import (
	"errors"

	"github.com/shenikar/ojt_tracker/internal/apiclient"
)

// Локальные ошибки проверки: до сервера такие запросы не доходят
var (
	ErrAlreadyMounted = errors.New("gate already mounted")
	ErrNotMounted     = errors.New("gate is not mounted")
	ErrAlreadyTimedIn = errors.New("already timed in today")
	ErrDayComplete    = errors.New("attendance for today is already complete")
	ErrNotTimedIn     = errors.New("not timed in")
	ErrNoLocation     = errors.New("current location is not available yet")
	ErrOutsideZone    = errors.New("outside of the company safe zone")
	ErrActionInFlight = errors.New("another attendance action is in progress")
)

// UserMessage возвращает текст ошибки для пользователя.
// Сообщение сервера передается без изменений.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var serverErr *apiclient.ServerError
	switch {
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.Is(err, ErrOutsideZone):
		return "You are outside your company's safe zone. Move inside the zone to time in."
	case errors.Is(err, ErrNoLocation):
		return "Waiting for your location. Please make sure GPS is enabled."
	case errors.Is(err, ErrAlreadyTimedIn):
		return "You have already timed in today."
	case errors.Is(err, ErrDayComplete):
		return "You have already timed out today."
	case errors.Is(err, ErrNotTimedIn):
		return "You need to time in first."
	case errors.Is(err, ErrActionInFlight):
		return "Please wait, your request is being processed."
	}
	return "Something went wrong. Please try again."
}
