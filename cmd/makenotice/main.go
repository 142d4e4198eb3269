package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"noticegen-web/internal/notice"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makenotice <recipients-file> <template.docx>",
		Short: "Generate per-branch bank notices from a recipients sheet",
		Long: `makenotice reads an Excel or CSV sheet of bank account records, groups the
rows by their 11-character routing code, and fills the Word template once per
branch: the placeholder bank name is replaced, the accounts table is rebuilt
with the branch's rows, and the block following "Nodal Officer" is rewritten.

Column headers are matched flexibly ("A/c No", "Account Number", "Name of
Customer", "IFSC Code", ...). Rows whose routing code fails validation are
skipped and reported.

Example:
  makenotice accounts.xlsx template.docx -o output_notices --tone urgent`,
		Args:         cobra.ExactArgs(2),
		RunE:         runGenerate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output-dir", "o", "notices_output", "Output directory for generated notices")
	cmd.Flags().String("placeholder", "ICICI BANK", "Placeholder text in the template to replace with each bank name")
	cmd.Flags().String("tone", "formal", "Document tone: formal, urgent, friendly, or auto")
	cmd.Flags().String("font-name", "Bookman Old Style", "Fallback font name when the template declares none")
	cmd.Flags().Int("font-size", 8, "Fallback font size in points when the template declares none")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	recipientsPath, templatePath := args[0], args[1]

	outputDir, _ := cmd.Flags().GetString("output-dir")
	placeholder, _ := cmd.Flags().GetString("placeholder")
	tone, _ := cmd.Flags().GetString("tone")
	fontName, _ := cmd.Flags().GetString("font-name")
	fontSize, _ := cmd.Flags().GetInt("font-size")

	if _, err := os.Stat(recipientsPath); err != nil {
		return fmt.Errorf("recipients file: %w", err)
	}
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("template file: %w", err)
	}

	rows, err := notice.ReadRecords(recipientsPath)
	if err != nil {
		return err
	}

	grouped, invalid := notice.GroupByRoutingCode(rows)
	if len(invalid) > 0 {
		color.New(color.FgYellow).Fprintf(os.Stderr, "Skipped %d rows with invalid routing codes:\n", len(invalid))
		for i, code := range invalid {
			if i == 5 {
				fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(invalid)-5)
				break
			}
			fmt.Fprintf(os.Stderr, "  %q\n", code)
		}
	}
	if grouped.Len() == 0 {
		return fmt.Errorf("no valid routing codes found in %s", recipientsPath)
	}

	fmt.Printf("Read %d records across %d branches\n\n", grouped.TotalRecords(), grouped.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := &notice.Generator{
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Options: notice.Options{
			Placeholder: placeholder,
			Tone:        notice.Tone(tone),
			FontName:    fontName,
			FontSize:    fontSize,
		},
		OnNotice: func(done, total int, res notice.NoticeResult) {
			if res.Err != nil {
				color.New(color.FgRed).Printf("[%d/%d] %s (%s): %v\n", done, total, res.BankName, res.RoutingCode, res.Err)
				return
			}
			fmt.Printf("[%d/%d] %s (%s) - %d account(s) -> %s\n",
				done, total, res.BankName, res.RoutingCode, res.RecordCount, res.Filename)
		},
	}

	summary, err := gen.Generate(ctx, grouped)
	if err != nil {
		return err
	}

	fmt.Println()
	color.New(color.FgGreen).Printf("Generated %d/%d notices in %s\n", summary.Generated, summary.Groups, outputDir)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d notices failed", summary.Failed, summary.Groups)
	}
	return nil
}
