package sampler

import (
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

// Sample - одна отметка местоположения устройства
type Sample struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
}

// Coordinate возвращает координату в порядке приложения
func (s Sample) Coordinate() geo.AppCoordinate {
	return geo.AppCoordinate{Lat: s.Lat, Lng: s.Lng}
}

// ErrorCode - класс ошибки геолокации
type ErrorCode int

const (
	Unknown ErrorCode = iota
	PermissionDenied
	PositionUnavailable
	Timeout
	Unsupported
)

func (c ErrorCode) String() string {
	switch c {
	case PermissionDenied:
		return "permission_denied"
	case PositionUnavailable:
		return "position_unavailable"
	case Timeout:
		return "timeout"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// ErrUnsupported возвращает провайдер, если у устройства нет геолокации
var ErrUnsupported = errors.New("geolocation is not supported")

// PositionError - классифицированная ошибка получения координат
type PositionError struct {
	Code ErrorCode
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Code, e.Err)
	}
	return "geolocation " + e.Code.String()
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// Message возвращает текст для пользователя
func (e *PositionError) Message() string {
	switch e.Code {
	case PermissionDenied:
		return "Location permission denied. Please allow location access and retry."
	case PositionUnavailable:
		return "Location information is unavailable. Check your GPS signal."
	case Timeout:
		return "Location request timed out. Still trying..."
	case Unsupported:
		return "Geolocation is not supported by this device."
	}
	return "An unknown error occurred while getting your location."
}

// Classify приводит произвольную ошибку провайдера к PositionError
func Classify(err error) *PositionError {
	if err == nil {
		return nil
	}
	var pe *PositionError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, ErrUnsupported) {
		return &PositionError{Code: Unsupported, Err: err}
	}
	return &PositionError{Code: Unknown, Err: err}
}

// Update - очередное событие подписки: либо отметка, либо ошибка
type Update struct {
	Sample *Sample
	Err    *PositionError
}

// Options - параметры подписки на геолокацию
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions: высокая точность, таймаут 20s, возраст отметки не старше 1s
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      20 * time.Second,
		MaximumAge:   time.Second,
	}
}
