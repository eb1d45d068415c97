package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yhteys/backend/internal/config"
	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/repository"
	"github.com/yhteys/backend/internal/storage"
	"github.com/yhteys/backend/internal/web"
)

const msgNoMessages = "Ei tallennettuja viestejä."

func listCmd() *cobra.Command {
	var (
		dataFile string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contact messages",
		Long: `List every stored contact message in creation order.

The data file and time zone default to the server configuration
(DATA_FILE, TIMEZONE, CONFIG_FILE).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if timezone != "" {
				cfg.Timezone = timezone
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			store := storage.NewLocalStorage(filepath.Dir(cfg.DataFile))
			repo := repository.NewJSONFileContactRepository(store, filepath.Base(cfg.DataFile))
			messages, err := repo.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printMessages(cmd.OutOrStdout(), messages, loc)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "", "Path to the contact messages file")
	cmd.Flags().StringVar(&timezone, "timezone", "", "Time zone for dates (e.g. Europe/Helsinki)")
	return cmd
}

func printMessages(w io.Writer, messages []*model.ContactMessage, loc *time.Location) error {
	if len(messages) == 0 {
		_, err := fmt.Fprintln(w, msgNoMessages)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PÄIVÄMÄÄRÄ\tNIMI\tSÄHKÖPOSTI\tTYYPPI\tAIHE\tVIESTI")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			web.FormatDate(m.CreatedAt, loc),
			cell(m.Name),
			cell(m.Email),
			cell(m.Type),
			cell(m.Subject),
			cell(m.Message),
		)
	}
	return tw.Flush()
}

// cell flattens a value onto one table line.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	return s
}
