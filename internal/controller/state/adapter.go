package state

import (
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
)

// Adapter даёт callback-обработчикам доступ к диалогам через callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(telegramID))
}

// InState true, если диалог жив и находится в одном из states.
// Истёкший по TTL диалог считается StateNone.
func (a *Adapter) InState(telegramID int64, states ...callbacktypes.UserState) bool {
	current := a.sm.GetState(telegramID)
	if current == StateNone {
		return false
	}
	for _, s := range states {
		if UserState(s) == current {
			return true
		}
	}
	return false
}

func (a *Adapter) SetState(telegramID int64, s callbacktypes.UserState) {
	a.sm.SetState(telegramID, UserState(s))
}

func (a *Adapter) GetData(telegramID int64, key string) (interface{}, bool) {
	return a.sm.GetData(telegramID, key)
}

func (a *Adapter) SetData(telegramID int64, key string, value interface{}) {
	a.sm.SetData(telegramID, key, value)
}

func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}

func (a *Adapter) GetAllData(telegramID int64) map[string]interface{} {
	return a.sm.GetAllData(telegramID)
}
