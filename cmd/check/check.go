// Package check implements the check command, which reports whether messages
// look like bank notifications without extracting them.
package check

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"spendly/sms-extract/cmd/common"
	"spendly/sms-extract/cmd/root"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/pipeline"
	"spendly/sms-extract/internal/source"
	"spendly/sms-extract/internal/textutils"

	"github.com/spf13/cobra"
)

// ErrNotTransactional is returned when no segment passed the pre-filter.
var ErrNotTransactional = errors.New("no transactional message found")

const snippetLength = 60

var (
	text       string
	sourceKind string
	quiet      bool
)

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether messages look like bank notifications",
	Long: `Check whether messages look like bank notifications.

Every message is split into segments and each segment is reported as true or false.
The command exits with a non-zero status when no segment looks transactional, so it
can be used in scripts:

  sms-extract check --quiet --text "$SMS" && sms-extract parse --text "$SMS"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		in := common.Input{
			Text:   text,
			File:   root.SharedFlags.Input,
			Stdin:  cmd.InOrStdin(),
			Source: sourceKind,
		}
		return Run(c, in, quiet, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Message text to check instead of a file")
	Cmd.Flags().StringVarP(&sourceKind, "source", "s", "auto", "Input type: auto, text, xml or html")
	Cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only set the exit status")
}

// Run prints one verdict per segment and returns ErrNotTransactional when none
// passed.
func Run(c *container.Container, in common.Input, quiet bool, out io.Writer) error {
	messages, err := common.ReadMessages(in, c.GetLogger())
	if err != nil {
		return err
	}

	p := c.GetPipeline()
	var checks []pipeline.Check
	for _, text := range source.Texts(messages) {
		checks = append(checks, p.CheckText(text)...)
	}

	if !quiet {
		for _, chk := range checks {
			if _, err := fmt.Fprintf(out, "%-5t  %s\n", chk.Transactional, textutils.Snippet(strings.Join(strings.Fields(chk.Text), " "), snippetLength)); err != nil {
				return err
			}
		}
	}

	if !pipeline.AnyTransactional(checks) {
		return ErrNotTransactional
	}
	return nil
}
