package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javajack/xlref"
)

type refInfo struct {
	A1          string `yaml:"a1"`
	R1C1        string `yaml:"r1c1"`
	Sheet       string `yaml:"sheet,omitempty"`
	Row         int    `yaml:"row"`
	Col         int    `yaml:"col"`
	WholeRow    bool   `yaml:"whole_row,omitempty"`
	WholeColumn bool   `yaml:"whole_column,omitempty"`
}

type rangeInfo struct {
	A1      string `yaml:"a1"`
	R1C1    string `yaml:"r1c1"`
	Sheet   string `yaml:"sheet,omitempty"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
	Single  bool   `yaml:"single_cell"`
}

// parseAnyRef accepts A1 notation first, then R1C1.
func parseAnyRef(s string) (xlref.CellRef, error) {
	ref, err := xlref.ParseCellRef(s)
	if err == nil {
		return ref, nil
	}
	if rc, rcErr := xlref.ParseRowColRef(s); rcErr == nil {
		return rc, nil
	}
	return xlref.CellRef{}, err
}

func (a *app) refCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ref <reference>",
		Short: "Parse a cell reference and print it in A1 and R1C1 notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseAnyRef(args[0])
			if err != nil {
				return err
			}
			info := refInfo{
				A1:          ref.FormatAsString(),
				R1C1:        ref.FormatAsRowColString(),
				Sheet:       ref.Sheet,
				Row:         ref.Row,
				Col:         ref.Col,
				WholeRow:    ref.IsWholeRow(),
				WholeColumn: ref.IsWholeColumn(),
			}
			return a.render(cmd.OutOrStdout(), info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\t%s\n", info.A1, info.R1C1)
				return err
			})
		},
	}
}

func (a *app) rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <range>",
		Short: "Parse a cell range and print its normalized form and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := xlref.ParseCellRange(args[0])
			if err != nil {
				return err
			}
			info := rangeInfo{
				A1:      rng.FormatAsString(),
				R1C1:    rng.FormatAsRowColString(),
				Sheet:   rng.Sheet(),
				Rows:    rng.RowsCount(),
				Columns: rng.ColumnsCount(),
				Single:  rng.IsSingleCell(),
			}
			return a.render(cmd.OutOrStdout(), info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", info.A1, info.R1C1, rng.Size())
				return err
			})
		},
	}
}
