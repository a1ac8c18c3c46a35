package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var minConfidence float64

var recognizeCmd = &cobra.Command{
	Use:   "recognize <text>",
	Short: "Score one utterance against the catalog",
	Long: `Score one utterance against every active intent and print the matched
and candidate buckets as JSON. The top match's usage count is incremented.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecognize,
}

var batchCmd = &cobra.Command{
	Use:   "batch <file|->",
	Short: "Score many utterances, one per line",
	Long: `Read utterances one per line from a file, or from stdin when the
argument is "-", and print one JSON result per non-blank line in input order.
At most 100 lines are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(batchCmd)

	for _, c := range []*cobra.Command{recognizeCmd, batchCmd} {
		c.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Matched-bucket threshold in (0, 1] (default: configured value)")
	}
}

func runRecognize(cmd *cobra.Command, args []string) error {
	a, err := openApp(stderrLogs(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.recognition.Recognize(cmd.Context(), a.tenantID, strings.Join(args, " "), a.threshold())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), outcome)
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] == "-" {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errors.New("batch reads stdin but stdin is a terminal; pipe utterances in or pass a file")
		}
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var texts []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batch input: %w", err)
	}

	a, err := openApp(stderrLogs(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.recognition.RecognizeBatch(cmd.Context(), a.tenantID, texts, a.threshold())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), entries)
}

func (a *app) threshold() float64 {
	if minConfidence != 0 {
		return minConfidence
	}
	return a.cfg.Recognition.MinConfidence
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
