package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/store"
)

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect what was sent to and received from the AI tutor",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tutor requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		opts := store.QueryOpts{}
		opts.Limit, _ = f.GetInt("limit")
		opts.Purpose, _ = f.GetString("purpose")
		opts.ConversationID, _ = f.GetString("conversation")
		if since, _ := f.GetDuration("since"); since > 0 {
			opts.From = time.Now().Add(-since)
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		events, err := d.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its full prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event ID must be a number, got %q", args[0])
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		e, err := d.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no event with ID %d", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		events, ctx := d.store.EventRepo(), cmd.Context()
		byPurpose, err := events.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := events.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		printUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func printEvents(w io.Writer, events []store.LLMRequestEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No tutor requests recorded.")
		return
	}
	const row = "%-5v  %-19v  %-12v  %-28v  %6v  %6v  %7v  %v\n"
	fmt.Fprintf(w, row, "ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	rule(w, 100)
	for _, e := range events {
		ok := "yes"
		if !e.Success {
			ok = "no"
		}
		fmt.Fprintf(w, row, e.ID, e.Timestamp.Local().Format(stamp), e.Purpose,
			truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
}

func printEvent(w io.Writer, e *store.LLMRequestEventRecord) {
	field := func(name string, v any) { fmt.Fprintf(w, "%-13s %v\n", name+":", v) }

	field("ID", e.ID)
	field("Time", e.Timestamp.Local().Format(stamp))
	field("Provider", e.Provider+" / "+e.Model)
	field("Purpose", e.Purpose)
	if e.ConversationID != "" {
		field("Conversation", e.ConversationID)
	}
	field("Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens))
	field("Latency", time.Duration(e.LatencyMs)*time.Millisecond)
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}

	for _, part := range []struct{ name, body string }{
		{"Request", e.RequestBody},
		{"Response", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "── "+part.name+" "+strings.Repeat("─", 56-len(part.name)))
		if part.body == "" {
			fmt.Fprintln(w, "(not captured)")
			continue
		}
		fmt.Fprintln(w, part.body)
	}
}

func printUsage(w io.Writer, byPurpose []store.LLMUsageStats, byModel []store.LLMModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No tutor usage recorded yet.")
		return
	}

	const purposeRow = "%-14v  %6v  %10v  %10v  %8v\n"
	fmt.Fprintln(w, "By purpose")
	fmt.Fprintf(w, purposeRow, "Purpose", "Calls", "Input", "Output", "Avg ms")
	rule(w, 56)
	var calls, in, out int
	for _, s := range byPurpose {
		fmt.Fprintf(w, purposeRow, s.Purpose, s.Calls, s.InputTokens, s.OutputTokens, s.AvgLatencyMs)
		calls, in, out = calls+s.Calls, in+s.InputTokens, out+s.OutputTokens
	}
	rule(w, 56)
	fmt.Fprintf(w, purposeRow, "total", calls, in, out, "")

	if len(byModel) == 0 {
		return
	}
	const modelRow = "%-30v  %6v  %10v  %10v  %9v\n"
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintf(w, modelRow, "Model", "Calls", "Input", "Output", "Cost")
	rule(w, 72)

	var total float64
	var unpriced []string
	for _, m := range byModel {
		cost := "?"
		if price := llm.LookupCost(m.Model); price != nil {
			c := price.Cost(m.InputTokens, m.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, m.Model)
		}
		fmt.Fprintf(w, modelRow, truncate(m.Model, 30), m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	rule(w, 72)

	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(w, modelRow, label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	f := llmListCmd.Flags()
	f.IntP("limit", "n", 20, "Number of requests to show")
	f.StringP("purpose", "p", "", "Only this purpose (quiz, grammar, conversation)")
	f.String("conversation", "", "Only the turns of this conversation")
	f.Duration("since", 0, "Only requests newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
