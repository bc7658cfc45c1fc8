package assistant

import "context"

// Role tags a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged utterance in the transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Source is a grounding reference returned by the search path.
type Source struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Generator is the external text-generation collaborator.
type Generator interface {
	// GenerateReply produces one reply for the query, given every prior
	// turn in original order. The persona instruction is the generator's
	// concern and is not part of the transcript.
	GenerateReply(ctx context.Context, history []Turn, query string) (string, error)

	// SearchWithGrounding issues a one-shot query (no history) and
	// returns a text payload plus its grounding sources.
	SearchWithGrounding(ctx context.Context, query string) (string, []Source, error)
}
