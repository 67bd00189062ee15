package application

import (
	"errors"
	"fmt"

	designdomain "github.com/Apurer/go-gin-design-library/internal/domains/designs/domain"
	"github.com/Apurer/go-gin-design-library/internal/domains/meetings/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid meeting input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyVendor) ||
		errors.Is(err, domain.ErrMissingHeldAt) ||
		errors.Is(err, designdomain.ErrEmptyImage) ||
		errors.Is(err, designdomain.ErrInvalidImage) ||
		errors.Is(err, designdomain.ErrNegativePrice) ||
		errors.Is(err, designdomain.ErrMissingMeeting) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
