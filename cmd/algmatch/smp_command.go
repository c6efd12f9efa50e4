// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/algmatch/preference"
	"github.com/katalvlaran/algmatch/smp"
)

func newSMPCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "smp",
		Short: "Compute M0, Mz and the GS-lists of a Stable Marriage instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return errors.New("--file is required")
			}
			log, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sm, err := smp.New(preference.FromFile[preference.SMDictionary](file), smp.WithLogger(log))
			if err != nil {
				return err
			}
			table, err := ctx.useTable(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writeSMP(cmd.OutOrStdout(), sm, table)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Preference file (.txt, .yaml, .toml)")

	return cmd
}

// smpRows lists men then women with their role, both matchings and their
// GS-list.
func smpRows(sm *smp.StableMarriage) [][]string {
	inst := sm.Instance()
	m0, mz, gs := sm.M0(), sm.Mz(), sm.GSLists()

	keys := append(inst.Men().Keys(), inst.Women().Keys()...)
	rows := make([][]string, 0, len(keys))
	for _, id := range keys {
		role := "woman"
		if inst.Men().Has(id) {
			role = "man"
		}
		rows = append(rows, []string{id, role, partner(m0[id]), partner(mz[id]), strings.Join(gs[id], " ")})
	}
	return rows
}

func writeSMP(w io.Writer, sm *smp.StableMarriage, table bool) error {
	rows := smpRows(sm)
	if table {
		_, err := fmt.Fprintln(w, renderTable("GS-lists", []string{"Agent", "Role", "M0", "Mz", "GS-list"}, rows))
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s: M0=%s Mz=%s GS=[%s]\n", r[0], r[2], r[3], r[4]); err != nil {
			return err
		}
	}
	return nil
}

func partner(id string) string {
	if id == "" {
		return "-"
	}
	return id
}
