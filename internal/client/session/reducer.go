package session

import "fmt"

// Effect is the storage work a transition requires.
type Effect int

const (
	EffectNone Effect = iota
	// EffectPersistCredential writes the new state's credential cookie.
	EffectPersistCredential
	// EffectRemoveCredential deletes the credential cookie.
	EffectRemoveCredential
)

func (e Effect) String() string {
	switch e {
	case EffectPersistCredential:
		return "persist"
	case EffectRemoveCredential:
		return "remove"
	default:
		return "none"
	}
}

// Reduce returns the state after a and the effect the caller must perform.
// It never mutates s.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case Requested:
		s.Error = ""
		s.IsLoading = true
		s.live = a.Seq
		return s, EffectNone

	case Issued:
		if !s.settles(a.Seq) {
			return s, EffectNone
		}
		if a.Credential == "" || a.Profile == nil {
			s.IsLoading = false
			s.Error = a.Op.DefaultMessage()
			s.live = 0
			return s, EffectNone
		}
		next := authenticated(a.Credential, a.Profile.Clone())
		next.JustLoggedOut = s.JustLoggedOut
		return next, EffectPersistCredential

	case Rejected:
		if !s.settles(a.Seq) {
			return s, EffectNone
		}
		s.IsLoading = false
		s.Error = a.Message
		s.live = 0
		return s, EffectNone

	case Logout:
		return State{JustLoggedOut: true}, EffectRemoveCredential

	case ClearLogoutFlag:
		s.JustLoggedOut = false
		return s, EffectNone

	case ClearError:
		s.Error = ""
		return s, EffectNone

	default:
		panic(fmt.Sprintf("session: unknown action %T", a))
	}
}

func (s State) settles(seq uint64) bool {
	return s.live != 0 && s.live == seq
}
