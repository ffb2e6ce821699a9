package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/dealcraft/dealcraft/internal/model"
	"github.com/dealcraft/dealcraft/internal/service"
)

// -- partners --

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "List investment partners",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, closeFn, err := initService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		partners, err := svc.Partners(ctx)
		if err != nil {
			return eris.Wrap(err, "partners")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeIndented(cmd.OutOrStdout(), partners)
		}
		formatPartners(cmd.OutOrStdout(), partners)
		return nil
	},
}

// -- companies --

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List preloaded companies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, closeFn, err := initService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		companies, err := svc.Companies(ctx)
		if err != nil {
			return eris.Wrap(err, "companies")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeIndented(cmd.OutOrStdout(), companies)
		}
		formatCompanies(cmd.OutOrStdout(), companies)
		return nil
	},
}

func init() {
	partnersCmd.Flags().Bool("json", false, "print JSON instead of a table")
	companiesCmd.Flags().Bool("json", false, "print JSON instead of a table")
	rootCmd.AddCommand(partnersCmd, companiesCmd)
}

// initService builds a Service over the configured provider.
func initService(cmd *cobra.Command) (*service.Service, func(), error) {
	provider, closeFn, err := initProvider(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.New(provider, cfg.Match.TopN), closeFn, nil
}

func formatPartners(out io.Writer, partners []model.Partner) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTITLE\tSECTORS\tSTAGES")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-------\t------")

	for _, p := range partners {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			truncate(p.Title, 30),
			strings.Join(p.Preferences.Sectors, ", "),
			strings.Join(p.Preferences.Stages, ", "),
		)
	}
	_ = w.Flush()
}

func formatCompanies(out io.Writer, companies []model.Company) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tSECTOR\tSTAGE\tASK")
	_, _ = fmt.Fprintln(w, "-------\t------\t-----\t---")

	for _, c := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.Name,
			c.Sector,
			c.Stage,
			truncate(c.FundraisingAsk, 30),
		)
	}
	_ = w.Flush()
}

func writeIndented(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
