package state

import (
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateLifecycle(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetData(1, KeyRequestID, "r1")
	sm.SetState(1, StateApproveMessage)
	assert.Equal(t, StateApproveMessage, sm.GetState(1))

	// смена шага не теряет данные диалога
	sm.SetState(1, StateApproveDateTime)
	assert.Equal(t, "r1", sm.GetString(1, KeyRequestID))

	all := sm.GetAllData(1)
	all[KeyRequestID] = "mutated"
	assert.Equal(t, "r1", sm.GetString(1, KeyRequestID))

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Empty(t, sm.GetString(1, KeyRequestID))
	assert.Nil(t, sm.GetAllData(1))
}

func TestStateExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	sm := NewManager().WithTTL(10 * time.Minute).WithClock(func() time.Time { return now })

	sm.SetState(1, StateSetAvailability)
	sm.SetState(2, StateNewClassDay)

	now = now.Add(5 * time.Minute)
	sm.SetData(2, KeyClassSubject, "Math")

	now = now.Add(6 * time.Minute)
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateNewClassDay, sm.GetState(2))

	assert.Equal(t, 1, sm.Sweep())
	assert.Equal(t, StateNewClassDay, sm.GetState(2))

	// истёкший диалог начинается заново, старые данные не всплывают
	now = now.Add(time.Hour)
	sm.SetState(2, StateNewClassTime)
	_, ok := sm.GetData(2, KeyClassSubject)
	assert.False(t, ok)
}

func TestAdapterRoundTrip(t *testing.T) {
	sm := NewManager()
	var a callbacktypes.StateManager = NewAdapter(sm)

	a.SetState(7, callbacktypes.UserState(StateRejectMessage))
	a.SetData(7, KeyRequestID, "r9")
	require.Equal(t, StateRejectMessage, sm.GetState(7))

	v, ok := a.GetData(7, KeyRequestID)
	require.True(t, ok)
	assert.Equal(t, "r9", v)

	assert.True(t, a.InState(7, callbacktypes.UserState(StateApproveMessage), callbacktypes.UserState(StateRejectMessage)))
	assert.False(t, a.InState(7, callbacktypes.UserState(StateApproveMessage)))

	a.ClearState(7)
	assert.Equal(t, callbacktypes.UserState(StateNone), a.GetState(7))
	assert.False(t, a.InState(7, callbacktypes.UserState(StateNone)))
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id%5, StateNewClassTime)
			sm.SetData(id%5, KeyClassSubject, "x")
			_ = sm.GetState(id % 5)
			_ = sm.GetAllData(id % 5)
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, StateNewClassTime, sm.GetState(0))
}
