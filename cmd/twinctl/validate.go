package main

import (
	"fmt"
	"strings"

	"digital-twin-be/pkg/rag/faq"
	"digital-twin-be/pkg/rag/feedback"
	"digital-twin-be/pkg/rag/preprocess"
	"digital-twin-be/pkg/rag/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [query]",
	Short: "Show how a query is normalized and classified, offline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	query := preprocess.Preprocess(strings.Join(args, " "))

	fmt.Fprintf(out, "normalized: %q\n", query.Normalized)
	if query.Changed() {
		fmt.Fprintf(out, "stages:     %s\n", strings.Join(query.Stages, ", "))
	}

	res := validation.NewValidator().Validate(query.Normalized)
	if res.IsValid {
		color.New(color.FgGreen).Fprintf(out, "valid:      %s (confidence %.2f)\n", res.Category, res.Confidence)
	} else {
		color.New(color.FgRed).Fprintf(out, "rejected:   %s", res.ErrorType)
		if res.SpecificType != "" {
			fmt.Fprintf(out, " / %s", res.SpecificType)
		}
		fmt.Fprintln(out)
	}

	if fb := feedback.Detect(query.Normalized); fb != nil {
		color.New(color.FgCyan).Fprintf(out, "feedback:   %s (professional=%t)\n", fb.Type, fb.IsProfessional)
	}

	for _, p := range faq.NewMatcher(faq.DefaultCatalog()).Match(query.Normalized, 2) {
		fmt.Fprintf(out, "faq hint:   %s\n", p.Category)
	}
	return nil
}
