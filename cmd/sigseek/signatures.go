package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sigseek/sigseek/pkg/signature"
)

var signaturesPath string

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "List the signature catalogue",
	Long:  "List the builtin signature catalogue, or a custom catalogue loaded from a YAML file",
	RunE:  runSignatures,
}

func init() {
	signaturesCmd.Flags().StringVar(&signaturesPath, "signatures", "", "Path to a custom signature catalogue (YAML)")
}

func runSignatures(cmd *cobra.Command, args []string) error {
	signatures, err := loadCatalogue(signaturesPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	idColor := color.New(color.FgCyan)
	for _, s := range signatures {
		p, err := s.Pattern()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %-28s %d bytes\n", idColor.Sprintf("%-16s", s.ID), s.Name, len(p.Bytes))
	}
	fmt.Fprintf(out, "\n%d signatures\n", len(signatures))
	return nil
}

// loadCatalogue loads a custom catalogue when a path is given, otherwise the
// embedded builtin one.
func loadCatalogue(path string) ([]*signature.Signature, error) {
	if path != "" {
		return signature.LoadFile(path)
	}
	return signature.LoadBuiltin()
}
