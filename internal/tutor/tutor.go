package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/learner"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/vocab"
)

// Fallback texts shown when no model can be reached.
const (
	FallbackQuizNote = "AI unavailable. Sample quiz: What is 'hola'? (hello)"
	FallbackGrammar  = "AI unavailable. Assume correct."
	FallbackReply    = "AI unavailable. Response: Hello!"
)

// Tutor runs quiz generation, grammar correction and conversation practice
// against an LLM provider. A Tutor without a provider answers every call
// with a labelled fallback, as does one whose provider fails.
type Tutor struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// New creates a tutor. provider may be nil.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Tutor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tutor{provider: provider, cfg: cfg, log: log.Named("tutor")}
}

// Available reports whether calls will reach a model.
func (t *Tutor) Available() bool { return t.provider != nil }

// Reply is a single tutor answer.
type Reply struct {
	Text     string
	Fallback bool
}

// QuizInput is what GenerateQuiz needs to know about the learner.
type QuizInput struct {
	Profile   *learner.Profile
	Words     []vocab.Word
	Weak      []string
	Questions int
}

type quizOutput struct {
	Questions []struct {
		Term     string `json:"term"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"questions"`
}

// GenerateQuiz asks the model for a quiz pitched at the learner's tier.
// It never fails; on any error the quiz is built from the learner's
// vocabulary instead.
func (t *Tutor) GenerateQuiz(ctx context.Context, in QuizInput) Quiz {
	n := in.Questions
	if n <= 0 {
		n = t.cfg.Questions
	}
	if !t.Available() {
		return fallbackQuiz(in.Words, in.Weak, n)
	}

	ctx, cancel := t.withTimeout(llm.WithPurpose(ctx, llm.PurposeQuiz))
	defer cancel()

	var out quizOutput
	err := t.generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuizUserMessage(in, n)}},
		Schema:      QuizSchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	}, QuizSchema, &out)
	if err == nil && len(out.Questions) == 0 {
		err = fmt.Errorf("quiz generation: empty quiz")
	}
	if err != nil {
		t.log.Warn("quiz fell back", zap.Error(err))
		return fallbackQuiz(in.Words, in.Weak, n)
	}

	q := Quiz{}
	for _, item := range out.Questions {
		if len(q.Questions) == n {
			break
		}
		if strings.TrimSpace(item.Question) == "" || strings.TrimSpace(item.Answer) == "" {
			continue
		}
		q.Questions = append(q.Questions, Question{
			Term:   strings.TrimSpace(item.Term),
			Prompt: item.Question,
			Answer: item.Answer,
		})
	}
	if len(q.Questions) == 0 {
		t.log.Warn("quiz fell back", zap.String("reason", "no usable questions"))
		return fallbackQuiz(in.Words, in.Weak, n)
	}
	return q
}

type grammarOutput struct {
	IsCorrect   bool   `json:"is_correct"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

// CorrectGrammar returns a correction of sentence written in language.
func (t *Tutor) CorrectGrammar(ctx context.Context, sentence, language string) Reply {
	if !t.Available() {
		return Reply{Text: FallbackGrammar, Fallback: true}
	}

	ctx, cancel := t.withTimeout(llm.WithPurpose(ctx, llm.PurposeGrammar))
	defer cancel()

	var out grammarOutput
	err := t.generate(ctx, llm.Request{
		System:      grammarSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildGrammarUserMessage(sentence, language)}},
		Schema:      GrammarSchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	}, GrammarSchema, &out)
	if err != nil {
		t.log.Warn("grammar fell back", zap.Error(err))
		return Reply{Text: FallbackGrammar, Fallback: true}
	}

	if out.IsCorrect {
		text := "Looks correct!"
		if out.Explanation != "" {
			text += " " + out.Explanation
		}
		return Reply{Text: text}
	}
	return Reply{Text: fmt.Sprintf("Corrected: %s\n%s", out.Corrected, out.Explanation)}
}

type replyOutput struct {
	Reply string `json:"reply"`
}

// Converse produces the partner's next line given the earlier turns,
// oldest first, and the learner's new input.
func (t *Tutor) Converse(ctx context.Context, language string, history []llm.Message, input string) Reply {
	if !t.Available() {
		return Reply{Text: FallbackReply, Fallback: true}
	}

	ctx, cancel := t.withTimeout(llm.WithPurpose(ctx, llm.PurposeConversation))
	defer cancel()

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: input})

	var out replyOutput
	err := t.generate(ctx, llm.Request{
		System:      conversationSystemPrompt(language),
		Messages:    msgs,
		Schema:      ReplySchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: 0.7,
	}, ReplySchema, &out)
	if err == nil && strings.TrimSpace(out.Reply) == "" {
		err = fmt.Errorf("conversation: empty reply")
	}
	if err != nil {
		t.log.Warn("conversation fell back", zap.Error(err))
		return Reply{Text: FallbackReply, Fallback: true}
	}
	return Reply{Text: out.Reply}
}

// Conversation keeps the running dialogue for one practice session.
type Conversation struct {
	ID       string
	Language string

	tutor   *Tutor
	history []llm.Message
}

// NewConversation starts an empty conversation in language.
func (t *Tutor) NewConversation(language string) *Conversation {
	return &Conversation{ID: uuid.NewString(), Language: language, tutor: t}
}

// Say sends input and records both sides of the exchange. An exchange
// answered by a fallback is not recorded, so canned text never reaches
// the model as context.
func (c *Conversation) Say(ctx context.Context, input string) Reply {
	ctx = llm.WithConversation(ctx, c.ID)
	r := c.tutor.Converse(ctx, c.Language, c.history, input)
	if r.Fallback {
		return r
	}
	c.history = append(c.history,
		llm.Message{Role: llm.RoleUser, Content: input},
		llm.Message{Role: llm.RoleAssistant, Content: r.Text},
	)
	return r
}

// History returns a copy of the turns so far, oldest first.
func (c *Conversation) History() []llm.Message {
	out := make([]llm.Message, len(c.history))
	copy(out, c.history)
	return out
}

func (t *Tutor) generate(ctx context.Context, req llm.Request, schema *llm.Schema, out any) error {
	resp, err := t.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation: %w", llm.PurposeFrom(ctx), err)
	}
	if err := llm.ValidateJSON(schema, resp.Content); err != nil {
		return fmt.Errorf("%s response: %w", llm.PurposeFrom(ctx), err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse %s response: %w", llm.PurposeFrom(ctx), err)
	}
	return nil
}

func (t *Tutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.cfg.Timeout)
}
