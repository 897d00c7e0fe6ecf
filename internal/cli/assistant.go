package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamkelajack06/Study-Flow/internal/assistant"
	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

var assistantCmd = LeafCommand{
	Use:   "assistant [reply-file|-]",
	Short: "Apply an action returned by the timetable assistant",
	Example: `  studyflow assistant --state > context.txt   # timetable context for the model
  studyflow assistant reply.txt                # apply the model's reply
  pbpaste | studyflow assistant -`,
	Args: cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "state", Usage: "print the timetable context block instead of applying a reply"},
		{Name: "yes", Shorthand: "y", Usage: "skip delete confirmation"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _ := cmd.Flags().GetBool("state")
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, NewPromptKit(yes), func(a *app) error {
			if state {
				_, err := io.WriteString(cmd.OutOrStdout(), assistant.FormatState(a.store.Entries()))
				return err
			}
			src := "-"
			if len(args) > 0 {
				src = args[0]
			}
			reply, err := readReply(cmd, src)
			if err != nil {
				return err
			}
			return runAssistant(cmd, a, reply)
		})
	},
}.Build()

func readReply(cmd *cobra.Command, src string) (string, error) {
	var (
		data []byte
		err  error
	)
	if src == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return "", fmt.Errorf("reading assistant reply: %w", err)
	}
	return string(data), nil
}

func runAssistant(cmd *cobra.Command, a *app, reply string) error {
	w := cmd.OutOrStdout()

	action, err := assistant.ParseAction(reply)
	if errors.Is(err, assistant.ErrConversational) {
		_, _ = fmt.Fprintln(w, reply)
		return nil
	}
	if err != nil {
		return err
	}

	out := assistant.Apply(cmd.Context(), a.store, action)
	switch {
	case out.Cancelled:
		_, _ = fmt.Fprintln(w, Warning("cancelled"))
		return nil
	case out.Kind == assistant.KindView:
		_, _ = fmt.Fprintln(w, Info(out.Message))
		for _, e := range out.Entries {
			_, _ = fmt.Fprintf(w, "  %s\n", describe(e))
		}
		return nil
	case out.Batch != nil:
		for _, e := range out.Batch.Successful {
			_, _ = fmt.Fprintf(w, "%s %s\n", Info("added"), describe(e))
		}
		for _, f := range out.Batch.Failed {
			_, _ = fmt.Fprintf(w, "%s %s: %s\n", Error("skipped"), Bold(f.Entry.Subject), f.Reason)
		}
		_, _ = fmt.Fprintln(w, out.Message)
		return nil
	case out.Err != nil:
		return failed(timetable.Result{Message: out.Message, Err: out.Err})
	}

	_, _ = fmt.Fprintln(w, Info(out.Message))
	return nil
}
