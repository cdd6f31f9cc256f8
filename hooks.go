package ecs

import "github.com/google/uuid"

// HookEvent identifies which lifecycle moment a hook fires on.
type HookEvent int

const (
	HookOnAdd HookEvent = iota
	HookOnRemove
	HookOnChange
)

// HookFunc observes a single component mutation on e. value is the
// new value for OnAdd/OnChange, and the removed value for OnRemove.
type HookFunc func(e Entity, component ComponentID, value any)

// HookToken identifies a subscription for later removal.
type HookToken uuid.UUID

type hookSubscription struct {
	token HookToken
	fn    HookFunc
}

// hookRegistry dispatches lifecycle callbacks per (component, event),
// in subscription order.
type hookRegistry struct {
	subs map[ComponentID]map[HookEvent][]hookSubscription
}

func newHookRegistry() *hookRegistry {
	return &hookRegistry{subs: make(map[ComponentID]map[HookEvent][]hookSubscription)}
}

func (h *hookRegistry) subscribe(component ComponentID, event HookEvent, fn HookFunc) HookToken {
	token := HookToken(uuid.New())
	byEvent, ok := h.subs[component]
	if !ok {
		byEvent = make(map[HookEvent][]hookSubscription)
		h.subs[component] = byEvent
	}
	byEvent[event] = append(byEvent[event], hookSubscription{token: token, fn: fn})
	return token
}

// unsubscribe removes a previously returned token. Returns false if
// the token is unknown, already removed, or the zero value.
func (h *hookRegistry) unsubscribe(token HookToken) bool {
	for _, byEvent := range h.subs {
		for event, subs := range byEvent {
			for i, s := range subs {
				if s.token == token {
					byEvent[event] = append(subs[:i:i], subs[i+1:]...)
					return true
				}
			}
		}
	}
	return false
}

func (h *hookRegistry) fire(event HookEvent, component ComponentID, e Entity, value any) {
	byEvent, ok := h.subs[component]
	if !ok {
		return
	}
	for _, s := range byEvent[event] {
		s.fn(e, component, value)
	}
}
