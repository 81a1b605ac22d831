package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	appconfig "github.com/coinpulse/backend/internal/config"
	"github.com/coinpulse/backend/internal/insight"
	"github.com/coinpulse/backend/pkg/llm"
)

// newInsightCmd generates a single insight from the command line, which is
// handy for tuning prompts without going through the API.
func newInsightCmd(configPath *string) *cobra.Command {
	var investorType string
	var interests, preferences []string

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Generate one insight for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(*configPath)
			if err != nil {
				return err
			}

			var completions llm.Client
			if cfg.LLM.APIKey != "" {
				if completions, err = llm.NewClient(cfg.LLM); err != nil {
					return err
				}
				defer completions.Close()
			}

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			gen := insight.NewGenerator(completions, rng)

			text := gen.Generate(cmd.Context(), insight.Profile{
				InvestorType:       investorType,
				CryptoInterests:    interests,
				ContentPreferences: preferences,
			})
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&investorType, "investor-type", "", "investor type (hodler, day trader, nft collector)")
	cmd.Flags().StringSliceVar(&interests, "interests", nil, "crypto interests")
	cmd.Flags().StringSliceVar(&preferences, "preferences", nil, "content preferences")
	return cmd
}
