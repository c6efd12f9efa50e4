// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/algmatch/internal/config"
	"github.com/katalvlaran/algmatch/preference"
	"github.com/katalvlaran/algmatch/spa"
)

func newSPACommand(ctx *commandContext) *cobra.Command {
	var (
		file     string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "spa",
		Short: "Allocate students to projects and check the result for blocking pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return errors.New("--file is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			name := cfg.SPA.Strategy
			if strategy != "" {
				name = strings.ToLower(strings.TrimSpace(strategy))
			}
			s, err := spaStrategy(name)
			if err != nil {
				return err
			}
			log, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sess, err := spa.New(preference.FromFile[preference.SPADictionary](file), s, spa.WithLogger(log))
			if err != nil {
				return err
			}
			rep, err := sess.Run()
			if err != nil {
				return err
			}
			table, err := ctx.useTable(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return writeSPA(cmd.OutOrStdout(), sess, rep, table)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Preference file (.txt, .yaml, .toml)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Proposal strategy: student or lecturer (default from config)")

	return cmd
}

func spaStrategy(name string) (spa.Strategy, error) {
	switch name {
	case config.StrategyStudent:
		return spa.StudentOriented{}, nil
	case config.StrategyLecturer:
		return spa.LecturerOriented{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want %s or %s)", name, config.StrategyStudent, config.StrategyLecturer)
	}
}

func writeSPA(w io.Writer, sess *spa.Session, rep *spa.Report, table bool) error {
	if !table {
		if _, err := fmt.Fprintln(w, rep); err != nil {
			return err
		}
		return writeBlocking(w, rep)
	}

	inst := sess.Instance()
	rows := make([][]string, 0, inst.Students().Len())
	for _, s := range inst.Students().Keys() {
		p := rep.StableMatching[s]
		lecturer := ""
		if p != "" {
			lecturer = inst.Project(p).Lecturer()
		}
		rows = append(rows, []string{s, partner(p), partner(lecturer)})
	}
	title := fmt.Sprintf("%s, %d of %d assigned", rep.Verdict(), sess.Matching().Size(), inst.Students().Len())
	if _, err := fmt.Fprintln(w, renderTable(title, []string{"Student", "Project", "Lecturer"}, rows)); err != nil {
		return err
	}
	return writeBlocking(w, rep)
}

func writeBlocking(w io.Writer, rep *spa.Report) error {
	if rep.Stable {
		return nil
	}
	bp := rep.Blocking
	_, err := fmt.Fprintf(w, "blocking pair: (%s, %s) lecturer %s, type %s\n", bp.Student, bp.Project, bp.Lecturer, bp.Kind)
	return err
}
