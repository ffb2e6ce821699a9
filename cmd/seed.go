package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealcraft/dealcraft/internal/refdata"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load partner and company fixtures into the SQL store",
	Long:  "Reads the partner and company files, validates them and replaces the roster held in the configured store (store.driver).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		partnersPath, _ := cmd.Flags().GetString("partners")
		companiesPath, _ := cmd.Flags().GetString("companies")
		if partnersPath == "" {
			partnersPath = cfg.Data.PartnersPath
		}
		if companiesPath == "" {
			companiesPath = cfg.Data.CompaniesPath
		}

		snap, err := refdata.Load(ctx, refdata.NewFileProvider(partnersPath, companiesPath))
		if err != nil {
			return eris.Wrap(err, "seed")
		}

		st, err := initStore(ctx, cfg.Store.Driver, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.ReplaceAll(ctx, snap.Partners, snap.Companies); err != nil {
			return eris.Wrap(err, "seed")
		}

		zap.L().Info("seeded reference data",
			zap.String("driver", cfg.Store.Driver),
			zap.Int("partners", len(snap.Partners)),
			zap.Int("companies", len(snap.Companies)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("partners", "", "partners file (default data.partners_path)")
	seedCmd.Flags().String("companies", "", "companies file (default data.companies_path)")
	rootCmd.AddCommand(seedCmd)
}
