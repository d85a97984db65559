package lifecycle

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/model"
)

var (
	ErrNotPending  = errors.New("request is already resolved")
	ErrNotTerminal = errors.New("only approved or rejected requests can be deleted")
)

// CheckTransition проверяет переход статуса запроса.
// pending -> approved | rejected; из терминальных статусов переходов нет.
func CheckTransition(from, to model.RequestStatus) error {
	if from != model.RequestStatusPending {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrNotPending)
	}
	switch to {
	case model.RequestStatusApproved, model.RequestStatusRejected:
		return nil
	default:
		return fmt.Errorf("unsupported target status %q", to)
	}
}
