package manager

import "github.com/rs/zerolog"

// ZerologPublisher writes each event as one structured log line; failures are
// logged at warn level.
type ZerologPublisher struct {
	log zerolog.Logger
}

func NewZerologPublisher(l zerolog.Logger) *ZerologPublisher {
	return &ZerologPublisher{log: l.With().Str("component", "events").Logger()}
}

func (p *ZerologPublisher) Publish(e Event) {
	ev := p.log.Info()
	if e.Warning() {
		ev = p.log.Warn()
	}
	if e.ModelID != "" {
		ev = ev.Str("model", e.ModelID)
	}
	ev.Str("event", e.Name).Fields(e.Fields).Msg("manager event")
}
