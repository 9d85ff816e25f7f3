package entity

import (
	"encoding/json"
	"time"
)

// Optional distinguishes an absent field from an explicit null.
// Set is false when the key was missing; Set with a nil Value means "clear".
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// QuestionnairePatch lists the mutable columns. Nil / unset fields are left untouched.
type QuestionnairePatch struct {
	Status            *Status
	AppointmentBooked *bool
	AppointmentTime   Optional[time.Time]
	CloserName        Optional[string]
	GHLLink           Optional[string]
}

func (p QuestionnairePatch) IsEmpty() bool {
	return p.Status == nil &&
		p.AppointmentBooked == nil &&
		!p.AppointmentTime.Set &&
		!p.CloserName.Set &&
		!p.GHLLink.Set
}
