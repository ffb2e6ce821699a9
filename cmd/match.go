package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dealcraft/dealcraft/internal/model"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Recommend partners for a company or companies for a partner",
}

// -- match company --

var matchCompanyCmd = &cobra.Command{
	Use:   "company <name>",
	Short: "Rank partners for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, closeFn, err := initService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		fold, _ := cmd.Flags().GetBool("fold")
		lookup := svc.MatchCompany
		if fold {
			lookup = svc.MatchCompanyFold
		}

		result, err := lookup(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "match company")
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeIndented(out, result)
		}
		formatMatches(out, result.TopMatches, func(m model.PartnerCompanyMatch) string {
			return fmt.Sprintf("%s (%s)", m.Partner.Name, m.Partner.ID)
		})
		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			for _, m := range result.TopMatches {
				_, _ = fmt.Fprintf(out, "\n%s", m.Score.Explanation)
			}
		}
		return nil
	},
}

// -- match partner --

var matchPartnerCmd = &cobra.Command{
	Use:   "partner <id>",
	Short: "Rank companies for a partner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, closeFn, err := initService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		limit, _ := cmd.Flags().GetInt("limit")
		matches, err := svc.MatchPartner(ctx, args[0], limit)
		if err != nil {
			return eris.Wrap(err, "match partner")
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeIndented(out, matches)
		}
		formatMatches(out, matches, func(m model.PartnerCompanyMatch) string {
			return m.Company.Name
		})
		return nil
	},
}

func init() {
	matchCompanyCmd.Flags().Bool("fold", false, "match the company name case-insensitively")
	matchCompanyCmd.Flags().Bool("explain", false, "print the explanation for each match")
	matchCompanyCmd.Flags().Bool("json", false, "print the full match result as JSON")
	matchPartnerCmd.Flags().Int("limit", 0, "number of companies to show (0 for all)")
	matchPartnerCmd.Flags().Bool("json", false, "print matches as JSON")

	matchCmd.AddCommand(matchCompanyCmd, matchPartnerCmd)
	rootCmd.AddCommand(matchCmd)
}

func formatMatches(out io.Writer, matches []model.PartnerCompanyMatch, label func(model.PartnerCompanyMatch) string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tMATCH\tOVERALL\tSECTOR\tEXPERTISE\tSTAGE\tFOUNDER")
	_, _ = fmt.Fprintln(w, "-\t-----\t-------\t------\t---------\t-----\t-------")

	for i, m := range matches {
		s := m.Score
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.2f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			i+1, label(m), s.Overall, s.Sector, s.Expertise, s.Stage, s.Founder)
	}
	_ = w.Flush()
}
