package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsend/htmltext"
)

var (
	plainLinks bool

	plaintextCmd = &cobra.Command{
		Use:   "plaintext [file.html]",
		Short: "Show the plain text alternative generated for an HTML body",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunPlaintext,
	}
)

func init() {
	plaintextCmd.Flags().BoolVar(&plainLinks, "links", true, "keep link targets in the text")
	rootCmd.AddCommand(plaintextCmd)
}

func RunPlaintext(cmd *cobra.Command, args []string) error {
	var (
		html []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		html, err = io.ReadAll(cmd.InOrStdin())
	} else {
		html, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	txt, ok := htmltext.HTML2Text{Links: plainLinks, PrettyTables: true}.PlainText(string(html))
	if !ok {
		return errors.New("no plain text could be produced")
	}

	fmt.Fprintln(cmd.OutOrStdout(), txt)
	return nil
}
