package cmd

import (
	"github.com/EO-DataHub/eodhp-crm-console/internal/crm"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Summary is an overview of the three collections.
type Summary struct {
	Contacts       int                       `json:"contacts"`
	ActiveContacts int                       `json:"activeContacts"`
	Leads          int                       `json:"leads"`
	Pipeline       map[models.LeadStatus]int `json:"pipeline"`
	Deals          int                       `json:"deals"`
	DealValue      float64                   `json:"dealValue"`
	WeightedValue  float64                   `json:"weightedValue"`
}

// Summarize counts the collections currently held by the store.
func Summarize(s *crm.Store) Summary {
	contacts, leads, deals := s.Snapshot()

	sum := Summary{
		Contacts: len(contacts),
		Leads:    len(leads),
		Deals:    len(deals),
		Pipeline: make(map[models.LeadStatus]int, len(models.LeadPipeline)),
	}
	for _, status := range models.LeadPipeline {
		sum.Pipeline[status] = 0
	}
	for _, c := range contacts {
		if c.Status == models.ContactActive {
			sum.ActiveContacts++
		}
	}
	for _, l := range leads {
		sum.Pipeline[l.Status]++
	}
	for _, d := range deals {
		sum.DealValue += d.Value
		sum.WeightedValue += d.Value * float64(d.Probability) / 100
	}
	return sum
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Load every collection and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.authenticated(cmd.Context()); err != nil {
			return err
		}

		// Partial results are still worth showing
		if err := a.crm.FetchAll(cmd.Context()); err != nil {
			log.Warn().Err(err).Msg("some collections could not be loaded")
		}

		return printJSON(cmd.OutOrStdout(), Summarize(a.crm))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
