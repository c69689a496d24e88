package agent

// Effect enumerates the downstream side effects an agent may trigger.
type Effect int

const (
	EffectNone Effect = iota
	EffectCRMUpsert
	EffectSocialPublish
)

// Identity is one fixed agent in the roster.
type Identity struct {
	Name   string // display name used in response envelopes
	Effect Effect
	Extra  map[string]any // optional routing hints included in the envelope
}

// Roster is the closed set of agent identities addressable via /gpt/{agent}.
// Adding an agent means adding a row here; there is no dynamic registration.
var Roster = map[string]Identity{
	"cris":        {Name: "CRIS", Extra: map[string]any{"next": "route to appropriate agent based on task.intent"}},
	"ava":         {Name: "AVA"},
	"vinceassist": {Name: "VINCEASSIST"},
	"leadai":      {Name: "LEADAI", Effect: EffectCRMUpsert},
	"convertai":   {Name: "CONVERTAI", Effect: EffectSocialPublish},
	"demandai":    {Name: "DEMANDAI"},
	"scheduleai":  {Name: "SCHEDULEAI"},
	"verifyai":    {Name: "VERIFYAI"},
	"fundingai":   {Name: "FUNDINGAI"},
	"docbot":      {Name: "DOCBOT"},
	"revenueai":   {Name: "REVENUEAI", Extra: map[string]any{"hint": "includes stock-window content cadence & KPI rollups"}},
	"ytscribe":    {Name: "YTSCRIBE"},
	"qa":          {Name: "QA"},
	"compliance":  {Name: "COMPLIANCE"},
	"adsai":       {Name: "ADSAI"},
	"opsai":       {Name: "OPSAI"},
	"csai":        {Name: "CSAI"},
	"pricingai":   {Name: "PRICINGAI"},
	"partnerai":   {Name: "PARTNERAI"},
	"hiringai":    {Name: "HIRINGAI"},
	"financeai":   {Name: "FINANCEAI"},
	"auditai":     {Name: "AUDITAI"},
	"labsai":      {Name: "LABSAI"},
	"growthai":    {Name: "GROWTHAI"},
}

// Lookup resolves an agent slug against the roster.
func Lookup(slug string) (Identity, bool) {
	id, ok := Roster[slug]
	return id, ok
}
