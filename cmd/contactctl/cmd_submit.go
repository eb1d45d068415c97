package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yhteys/backend/internal/form"
	"github.com/yhteys/backend/pkg/contactclient"
)

func submitCmd() *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact message to a running server",
		Example: `  contactctl submit --name Ada --email ada@example.com --subject Hello \
    --message "Hi there" --type Feedback --accepted`,
		Args: cobra.NoArgs,
	}
	ff := addFieldFlags(cmd)
	cmd.Flags().StringVar(&serverURL, "url", "http://localhost:8080", "Base URL of the contact server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f := form.New()
		if err := ff.fill(f); err != nil {
			return err
		}

		client := contactclient.New(serverURL, nil)
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		err := f.Submit(ctx, client)
		out := cmd.OutOrStdout()
		switch f.State() {
		case form.StateInvalid:
			printErrors(out, f.Errors())
			return errInvalidInput
		case form.StateError:
			fmt.Fprintln(out, f.Status())
			var apiErr *contactclient.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				fmt.Fprintln(out, apiErr.Message)
			}
			return err
		}
		fmt.Fprintln(out, f.Status())
		return nil
	}
	return cmd
}
