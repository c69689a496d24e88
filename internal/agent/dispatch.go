package agent

import (
	"context"
	"errors"

	"github.com/bffaitrainer/bff-middleware/internal/integration"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

// ErrUnknownAgent is returned for slugs outside the roster.
var ErrUnknownAgent = errors.New("unknown agent")

// leadTag is attached to every contact captured through the lead agent.
const leadTag = "lead_generated"

// CRMClient upserts contacts into the CRM provider.
type CRMClient interface {
	UpsertContact(ctx context.Context, c integration.Contact) integration.Result
}

// SocialClient schedules posts with the social provider.
type SocialClient interface {
	SchedulePost(ctx context.Context, post map[string]any) integration.Result
}

// Dispatcher wraps agent tasks in the uniform response envelope and runs the
// agent's declared side effect. It holds no per-request state.
type Dispatcher struct {
	crm    CRMClient
	social SocialClient
	log    *logging.Logger
}

// NewDispatcher creates a dispatcher over the given adapters.
func NewDispatcher(crm CRMClient, social SocialClient, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		crm:    crm,
		social: social,
		log:    log.Sub("dispatch"),
	}
}

// Dispatch produces the response envelope for one task. When the agent's
// side effect fires, the adapter call is awaited and its result returned
// alongside the envelope; nil means no adapter was invoked. The envelope
// never merges the side-effect result.
func (d *Dispatcher) Dispatch(ctx context.Context, slug string, t Task) (Response, *integration.Result, error) {
	id, ok := Lookup(slug)
	if !ok {
		return Response{}, nil, ErrUnknownAgent
	}

	resp := Response{Agent: id.Name, Received: t, Extra: id.Extra}

	switch se := ResolveEffect(id, t); se.Kind {
	case EffectCRMUpsert:
		res := d.crm.UpsertContact(ctx, integration.Contact{
			Email: se.LeadEmail,
			Tags:  []string{leadTag},
		})
		d.logEffect(slug, "crm_upsert", res)
		return resp, &res, nil
	case EffectSocialPublish:
		res := d.social.SchedulePost(ctx, se.Post)
		d.logEffect(slug, "social_publish", res)
		return resp, &res, nil
	default:
		return resp, nil, nil
	}
}

func (d *Dispatcher) logEffect(slug, effect string, res integration.Result) {
	evt := d.log.Debug()
	if res.Status == integration.StatusError {
		evt = d.log.Warn()
	}
	evt.Str("agent", slug).
		Str("effect", effect).
		Str("status", string(res.Status)).
		Str("reason", res.Reason).
		Msg("side effect completed")
}
