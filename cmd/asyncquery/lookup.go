package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"go.llib.dev/asyncquery/pkg/asyncq"
	"go.llib.dev/asyncquery/pkg/errorkit"
	"go.llib.dev/asyncquery/pkg/logging"
	"go.llib.dev/asyncquery/pkg/lookup"
	"go.llib.dev/asyncquery/pkg/queryadapter"
	"go.llib.dev/asyncquery/pkg/source/jsoncodec"
)

type lookupFlags struct {
	Key     string
	Element string
	Fold    bool
}

func newLookupCommand(configPath *string) *cobra.Command {
	var flags lookupFlags
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Group the stored records by a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, *configPath, flags)
		},
	}
	cmd.Flags().StringVar(&flags.Key, "key", "", "record field to group by")
	cmd.Flags().StringVar(&flags.Element, "element", "", "record field to collect instead of the whole record")
	cmd.Flags().BoolVar(&flags.Fold, "fold", false, "compare keys case-insensitively")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// group is the output shape of one lookup grouping.
type group struct {
	Key    json.RawMessage `json:"key"`
	Values []any           `json:"values"`
}

var keyCodec = jsoncodec.Codec[any]{Canonical: true}

func runLookup(cmd *cobra.Command, configPath string, flags lookupFlags) (returnErr error) {
	ctx := logging.ContextWith(cmd.Context(), logging.Field("command", "lookup"))
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger := &logging.Logger{Out: cmd.ErrOrStderr(), Level: cfg.LogLevel()}

	store, err := OpenStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer errorkit.Finish(&returnErr, store.Close)

	adapter, err := queryadapter.Get(ctx, cfg.Policy(),
		queryadapter.WithLogger(logger),
		queryadapter.WithConcurrency(cfg.Query.Concurrency))
	if err != nil {
		return err
	}

	lk, err := groupRecords(ctx, queryadapter.View[Record](adapter, store), flags)
	if err != nil {
		return err
	}

	out := make([]group, 0, lk.Count())
	for g := range lk.Groupings() {
		out = append(out, group{Key: json.RawMessage(g.Key()), Values: g.Values()})
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
}

// groupRecords keys every record by the canonical JSON form of its key field,
// so 1 and 1.0 land in the same group. A missing field is keyed as null.
func groupRecords(ctx context.Context, src asyncq.Queryable[Record], flags lookupFlags) (*lookup.Lookup[string, any], error) {
	keyOf := func(ctx context.Context, r Record) (string, error) {
		data, err := keyCodec.Marshal(r[flags.Key])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	elementOf := func(ctx context.Context, r Record) (any, error) {
		if flags.Element == "" {
			return r, nil
		}
		return r[flags.Element], nil
	}
	var opts []lookup.Option[string]
	if flags.Fold {
		opts = append(opts, lookup.WithComparer(lookup.FoldString()))
	}
	return asyncq.ToLookupAwaitWithCancellationWithElement(ctx, src, keyOf, elementOf, opts...)
}
