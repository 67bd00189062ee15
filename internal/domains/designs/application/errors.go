package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid design input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyImage) ||
		errors.Is(err, domain.ErrInvalidImage) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingMeeting) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
