package llm

import "context"

// Purposes label what a request was for in the event log.
const (
	PurposeQuiz         = "quiz"
	PurposeGrammar      = "grammar"
	PurposeConversation = "conversation"
)

type ctxKey int

const (
	purposeKey ctxKey = iota
	conversationKey
)

// WithPurpose labels requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

// WithConversation marks requests made with ctx as turns of one
// conversation.
func WithConversation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationKey, id)
}

// ConversationFrom returns the conversation ID, or "".
func ConversationFrom(ctx context.Context) string {
	id, _ := ctx.Value(conversationKey).(string)
	return id
}
