package cmd

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/problemgen"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Answer generated questions in plain text (no timer, no leaderboard)",
	Long: `Generate and interactively answer questions for one level.

This is a stateless developer tool: no timer, no scoring and no leaderboard.
Useful for checking question quality at each level.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("level", 1, "Level number (1-based)")
	demoCmd.Flags().Int("count", 5, "Number of questions to generate")
	demoCmd.Flags().Uint64("seed", 0, "Question seed (0 picks a random one)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	levelNum, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	if levelNum < 1 || levelNum > difficulty.Count() {
		return fmt.Errorf("invalid level %d: must be 1-%d", levelNum, difficulty.Count())
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	level := difficulty.At(levelNum - 1)
	rng := problemgen.NewRand(seed)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintf(out, "Level %d: %s (operands %d-%d, %s per question, seed %d)\n\n",
		level.Number(), level.Name, level.OperandMin, level.OperandMax, level.TimeBudget, seed)

	var correct, asked int
	for i := 1; i <= count; i++ {
		q, err := problemgen.Generate(level, rng)
		if err != nil {
			fmt.Fprintf(out, "Question %d: generation failed: %v\n\n", i, err)
			continue
		}
		asked++

		fmt.Fprintf(out, "── Question %d/%d ──\n", i, count)
		fmt.Fprintf(out, "%s = ?\n", q.Text)
		for j, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %d\n", j+1, c)
		}

		fmt.Fprint(out, "\nYour choice (1-4): ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}

		idx, ok := choiceIndex(answer, len(q.Choices))
		if ok && problemgen.CheckAnswer(q.ChoiceLabels()[idx], q) {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %d\n", q.Answer)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// choiceIndex maps a single-digit choice label to its index.
func choiceIndex(s string, n int) (int, bool) {
	if len(s) != 1 || s[0] < '1' || int(s[0]-'0') > n {
		return 0, false
	}
	return int(s[0]-'1'), true
}
