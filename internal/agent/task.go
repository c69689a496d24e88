package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// defaultBrand is applied to tasks that do not name one.
const defaultBrand = "bff"

// ErrMissingIntent is returned for tasks without an intent.
var ErrMissingIntent = errors.New("intent is required")

// Task is one unit of work addressed to a named agent. Created per inbound
// request, consumed once, discarded after the response.
type Task struct {
	Brand   string         `json:"brand"`
	Partner string         `json:"partner,omitempty"`
	Intent  string         `json:"intent"`
	Data    map[string]any `json:"data,omitempty"`
}

// Response is the uniform envelope returned for every dispatched task.
type Response struct {
	Agent    string         `json:"agent"`
	Received Task           `json:"received"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// DecodeTask parses a task body, validates the intent, and applies the brand
// default.
func DecodeTask(r io.Reader) (Task, error) {
	var t Task
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Task{}, fmt.Errorf("parsing task: %w", err)
	}
	if t.Intent == "" {
		return Task{}, ErrMissingIntent
	}
	if t.Brand == "" {
		t.Brand = defaultBrand
	}
	if t.Data == nil {
		t.Data = map[string]any{}
	}
	return t, nil
}

// SideEffect is the typed side effect resolved from a task at the boundary.
// Handlers act on this tag instead of probing the data bag.
type SideEffect struct {
	Kind      Effect
	LeadEmail string         // set for EffectCRMUpsert
	Post      map[string]any // set for EffectSocialPublish
}

// ResolveEffect decides the task's side effect from the agent's declared
// capability and the matching data entry. An agent without the capability, or
// a task without the matching entry, resolves to no effect.
func ResolveEffect(id Identity, t Task) SideEffect {
	switch id.Effect {
	case EffectCRMUpsert:
		if lead, ok := t.Data["lead"].(map[string]any); ok {
			if email, ok := lead["email"].(string); ok && email != "" {
				return SideEffect{Kind: EffectCRMUpsert, LeadEmail: email}
			}
		}
	case EffectSocialPublish:
		if post, ok := t.Data["post"].(map[string]any); ok {
			return SideEffect{Kind: EffectSocialPublish, Post: post}
		}
	}
	return SideEffect{Kind: EffectNone}
}
