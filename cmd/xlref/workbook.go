package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javajack/xlref"
	"github.com/javajack/xlref/excel"
)

func (a *app) cellsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cells <file.xlsx> <range>",
		Short: "Print the formatted values of a range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			values, err := doc.Values(args[1])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), values, func(w io.Writer) error {
				for _, row := range values {
					if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) mergesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merges <file.xlsx> [sheet]",
		Short: "List the merged regions of a sheet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			sheet := doc.Sheet(name)
			if sheet == nil {
				return fmt.Errorf("%w: %q", excel.ErrSheetNotFound, name)
			}
			regions, err := sheet.MergedRegions()
			if err != nil {
				return err
			}
			out := make([]string, len(regions))
			for i, r := range regions {
				out[i] = r.String()
			}
			return a.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				for _, r := range out {
					if _, err := fmt.Fprintln(w, r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) mergeCmd() *cobra.Command {
	return a.editCmd("merge", "Merge each range, replacing intersecting regions", (*excel.Session).Merge)
}

func (a *app) unmergeCmd() *cobra.Command {
	return a.editCmd("unmerge", "Remove every merged region intersecting each range", (*excel.Session).Unmerge)
}

// editCmd builds a command that queues one session request per range
// argument and saves the workbook after a successful commit.
func (a *app) editCmd(name, short string, queue func(*excel.Session, xlref.CellRange) *excel.Session) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   name + " <file.xlsx> <range>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			sess := doc.NewSession()
			for _, arg := range args[1:] {
				rng, err := xlref.ParseCellRange(arg)
				if err != nil {
					return err
				}
				queue(sess, rng)
			}
			if err := sess.Commit(); err != nil {
				return err
			}

			if outPath == "" {
				err = doc.Save()
			} else {
				err = doc.SaveAs(outPath)
			}
			if err != nil {
				return err
			}
			a.log.Info("workbook updated",
				zap.String("command", name),
				zap.String("session", sess.ID()),
				zap.Int("ranges", len(args)-1))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file path (default: overwrite input)")
	return cmd
}

func (a *app) filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter <file.xlsx> <table range> <expression>",
		Short: "Print the table records matching an expression",
		Long: `filter treats the first row of the range as headers and prints each
record for which the expression is true, e.g.

  xlref filter staff.xlsx 'Sheet1!A:D' 'Age >= 30 && Dept == "Sales"'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			sheet, rng, err := doc.Range(args[1])
			if err != nil {
				return err
			}
			table, err := sheet.Table(rng.String())
			if err != nil {
				return err
			}
			records, err := table.Filter(args[2])
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), records, func(w io.Writer) error {
				headers := table.Headers()
				if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
					return err
				}
				row := make([]string, len(headers))
				for _, rec := range records {
					for i, h := range headers {
						row[i] = rec[h]
					}
					if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file.xlsx>",
		Short: "Print an outline of sheets, used ranges and merged regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			out, err := doc.Describe()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
}

type issueInfo struct {
	Severity string `yaml:"severity"`
	Ref      string `yaml:"ref"`
	Message  string `yaml:"message"`
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.xlsx>",
		Short: "Report broken references and error values",
		Long: `validate lists formulas referencing deleted cells or missing sheets and
cells holding error values. It fails when any issue is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			issues, err := doc.Validate()
			if err != nil {
				return err
			}
			infos := make([]issueInfo, len(issues))
			errCount := 0
			for i, is := range issues {
				sev := "warn"
				if is.Severity == excel.SeverityError {
					sev = "error"
					errCount++
				}
				infos[i] = issueInfo{Severity: sev, Ref: is.Ref.String(), Message: is.Message}
			}
			err = a.render(cmd.OutOrStdout(), infos, func(w io.Writer) error {
				for _, is := range issues {
					if _, err := fmt.Fprintln(w, is); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if errCount > 0 {
				return fmt.Errorf("%d validation error(s)", errCount)
			}
			return nil
		},
	}
}
