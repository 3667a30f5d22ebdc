package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quest-demos/concepts"
	"quest-demos/models"
)

func newEntropyCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entropy <text>",
		Short: "Shannon entropy of a string in bits per character",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			h := concepts.Entropy(text)
			resp := models.EntropyResponse{
				Entropy:    h,
				Normalized: concepts.NormalizedEntropy(text),
				Label:      concepts.StrengthLabel(h),
			}
			rows := [][]string{{
				strconv.FormatFloat(resp.Entropy, 'f', 4, 64),
				fmt.Sprintf("%.0f%%", resp.Normalized*100),
				resp.Label,
			}}
			return render(cmd.OutOrStdout(), opts, resp, []string{"Entropy", "Of Max", "Strength"}, rows)
		},
	}
}

func newGiniCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gini <label> [label...]",
		Short: "Gini impurity of a set of integer class labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := make([]int, 0, len(args))
			for _, a := range args {
				l, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("label %q is not an integer", a)
				}
				labels = append(labels, l)
			}
			g := concepts.Gini(labels)
			resp := models.GiniResponse{Gini: g, Purity: 1 - g, Label: concepts.PurityLabel(g)}
			rows := [][]string{{
				strconv.FormatFloat(resp.Gini, 'f', 4, 64),
				strconv.FormatFloat(resp.Purity, 'f', 4, 64),
				resp.Label,
			}}
			return render(cmd.OutOrStdout(), opts, resp, []string{"Gini", "Purity", "Label"}, rows)
		},
	}
}

func newBayesCommand(opts *globalOptions) *cobra.Command {
	var prior, likelihood, falsePositive float64

	cmd := &cobra.Command{
		Use:   "bayes",
		Short: "Posterior probability by Bayes' theorem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := concepts.Posterior(prior, likelihood, falsePositive)
			if err != nil {
				return err
			}
			rows := [][]string{{
				strconv.FormatFloat(res.Prior, 'f', 4, 64),
				strconv.FormatFloat(res.Likelihood, 'f', 4, 64),
				strconv.FormatFloat(res.FalsePositive, 'f', 4, 64),
				strconv.FormatFloat(res.Posterior, 'f', 4, 64),
				res.Verdict,
			}}
			return render(cmd.OutOrStdout(), opts, res, []string{"P(H)", "P(E|H)", "P(E|not H)", "P(H|E)", "Verdict"}, rows)
		},
	}

	cmd.Flags().Float64Var(&prior, "prior", concepts.DefaultPrior, "prior probability P(H)")
	cmd.Flags().Float64Var(&likelihood, "likelihood", concepts.DefaultLikelihood, "likelihood P(E|H)")
	cmd.Flags().Float64Var(&falsePositive, "false-positive", concepts.DefaultFalsePositive, "false positive rate P(E|not H)")
	return cmd
}
