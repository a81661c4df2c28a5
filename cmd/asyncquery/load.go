package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/logging"
)

const ErrMalformedRecord errorkit.Error = "malformed record"

const loadBatchSize = 256

func newLoadCommand(configPath *string) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Append JSON Lines records to the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, *configPath, input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "-", `JSON Lines file to load, "-" reads stdin`)
	return cmd
}

func runLoad(cmd *cobra.Command, configPath, input string) (returnErr error) {
	ctx := logging.ContextWith(cmd.Context(), logging.Field("command", "load"))
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger := &logging.Logger{Out: cmd.ErrOrStderr(), Level: cfg.LogLevel()}

	var in io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer errorkit.Finish(&returnErr, f.Close)
		in = f
	}

	store, err := OpenStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer errorkit.Finish(&returnErr, store.Close)

	var (
		batch []Record
		total int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.Append(batch...); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return ErrMalformedRecord.F("line %d: %w", line, err)
		}
		batch = append(batch, r)
		if len(batch) == loadBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	logger.Info(ctx, "records loaded",
		logging.Field("driver", cfg.Store.Driver),
		logging.Field("bucket", cfg.Store.Bucket),
		logging.Field("count", total))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d records\n", total)
	return err
}
