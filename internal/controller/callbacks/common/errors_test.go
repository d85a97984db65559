package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{service.ErrNotSignedIn, "/login"},
		{fmt.Errorf("wrap: %w", lifecycle.ErrAlternativeLoading), "загружается"},
		{lifecycle.ErrMissingDateTime, "YYYY-MM-DD HH:MM"},
		{&scheduling.ValidationError{Code: scheduling.ErrOverlap, Message: "time conflicts with class C01 (10:00-11:00)"},
			"❌ time conflicts with class C01 (10:00-11:00)"},
		{fmt.Errorf("approve request r1: %w", &backend.APIError{Status: 409, Message: "Session already started"}),
			"❌ Session already started"},
		{&backend.APIError{Status: 401}, "/login"},
		{errors.New("boom"), "Попробуйте позже"},
	}
	for _, c := range cases {
		assert.Contains(t, ErrorMessage(c.err), c.want, c.err.Error())
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
	assert.False(t, IsMessageNotModifiedError(errors.New("chat not found")))
}
