package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yhteys/backend/internal/form"
	"github.com/yhteys/backend/internal/validation"
)

var errInvalidInput = errors.New("input did not pass validation")

// fieldFlags binds one flag per form field.
type fieldFlags struct {
	values   map[string]*string
	accepted bool
}

func addFieldFlags(cmd *cobra.Command) *fieldFlags {
	ff := &fieldFlags{values: make(map[string]*string)}
	for _, field := range validation.Fields {
		if field == validation.FieldAccepted {
			continue
		}
		ff.values[field] = cmd.Flags().String(field, "", "Value of the "+field+" field")
	}
	cmd.Flags().BoolVar(&ff.accepted, validation.FieldAccepted, false, "Accept the privacy notice")
	return ff
}

// fill copies the flag values into f.
func (ff *fieldFlags) fill(f *form.Form) error {
	for field, v := range ff.values {
		if err := f.Set(field, *v); err != nil {
			return err
		}
	}
	f.SetAccepted(ff.accepted)
	return nil
}

// printErrors writes field errors in form order.
func printErrors(w io.Writer, errs validation.FieldErrors) {
	for _, field := range validation.Fields {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(w, "%s: %s\n", field, msg)
		}
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check field values without sending them",
		Args:  cobra.NoArgs,
	}
	ff := addFieldFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f := form.New()
		if err := ff.fill(f); err != nil {
			return err
		}
		errs := validation.Validate(f.Values())
		if errs.Valid() {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		printErrors(cmd.OutOrStdout(), errs)
		return errInvalidInput
	}
	return cmd
}
