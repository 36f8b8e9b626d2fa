package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jessevdk/go-flags"

	"github.com/quarry-data/quarry/clients/utils"
	"github.com/quarry-data/quarry/lib/config"
	"github.com/quarry-data/quarry/lib/csvio"
	"github.com/quarry-data/quarry/lib/dwh"
	"github.com/quarry-data/quarry/lib/logger"
	"github.com/quarry-data/quarry/lib/partition"
	"github.com/quarry-data/quarry/lib/typing"
	"github.com/quarry-data/quarry/lib/typing/values"
)

type sliceOptions struct {
	Table   string `long:"table" required:"true" description:"fully qualified table as database.schema.table"`
	CSV     string `long:"csv" required:"true" description:"CSV file to load from (write) or export to (read)"`
	Columns string `long:"columns" description:"comma-separated projection for reads"`
	Schema  string `long:"schema" description:"comma-separated name:kind pairs describing the CSV for writes"`

	PartitionName string `long:"partition-name" description:"partition dimension name (defaults to the expression)"`
	PartitionExpr string `long:"partition-expr" description:"SQL expression the partition predicate filters on"`
	WindowStart   string `long:"window-start" description:"inclusive time window start (YYYY-MM-DD or a full timestamp)"`
	WindowEnd     string `long:"window-end" description:"exclusive time window end"`
	Keys          string `long:"keys" description:"comma-separated categorical partition keys"`
}

func main() {
	settings, remaining, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		logger.Fatal("Failed to parse settings", slog.Any("err", err))
	}

	_logger, usingSentry := logger.NewLogger(settings.VerboseLogging, settings.Config.Reporting.Sentry)
	slog.SetDefault(_logger)
	if usingSentry {
		defer sentry.Flush(2 * time.Second)
		slog.Info("Sentry logging is enabled")
	}

	var opts sliceOptions
	positional, err := flags.ParseArgs(&opts, remaining)
	if err != nil {
		logger.Fatal("Failed to parse flags", slog.Any("err", err))
	}

	if len(positional) != 1 {
		logger.Fatal("Expected exactly one command: write or read")
	}

	slice, err := buildSlice(opts)
	if err != nil {
		logger.Fatal("Failed to build the table slice", slog.Any("err", err))
	}

	ctx := context.Background()
	store, err := utils.LoadStore(ctx, settings.Config)
	if err != nil {
		logger.Fatal("Failed to connect to the destination", slog.Any("err", err))
	}

	dialect, err := utils.LoadDialect(settings.Config.Output)
	if err != nil {
		logger.Fatal("Failed to load the dialect", slog.Any("err", err))
	}

	manager := dwh.NewManager(dialect, settings.Config.InsertBatchRows)

	switch positional[0] {
	case "write":
		kinds, err := parseSchema(opts.Schema)
		if err != nil {
			logger.Fatal("Failed to parse the schema", slog.Any("err", err))
		}

		record, err := csvio.ReadRecord(opts.CSV, kinds)
		if err != nil {
			logger.Fatal("Failed to load the CSV payload", slog.Any("err", err))
		}
		defer record.Release()

		result, err := manager.Write(ctx, store, slice, record)
		if err != nil {
			logger.Fatal("Failed to write", slog.Any("err", err))
		}

		slog.Info("Write completed", slog.String("slice", slice.String()), slog.Any("metadata", result.Metadata()))
	case "read":
		record, err := manager.Read(ctx, store, slice)
		if err != nil {
			logger.Fatal("Failed to read", slog.Any("err", err))
		}
		defer record.Release()

		if err = csvio.WriteRecord(opts.CSV, record); err != nil {
			logger.Fatal("Failed to export the CSV", slog.Any("err", err))
		}

		slog.Info("Read completed",
			slog.String("slice", slice.String()),
			slog.Int64("rows", record.NumRows()),
			slog.String("file", opts.CSV),
		)
	default:
		logger.Fatal("Unknown command", slog.String("command", positional[0]))
	}
}

func buildSlice(opts sliceOptions) (dwh.TableSlice, error) {
	parts := strings.Split(opts.Table, ".")
	if len(parts) != 3 {
		return dwh.TableSlice{}, fmt.Errorf("table must be database.schema.table, got %q", opts.Table)
	}

	slice := dwh.TableSlice{Database: parts[0], Schema: parts[1], Table: parts[2]}
	if opts.Columns != "" {
		slice.Columns = strings.Split(opts.Columns, ",")
	}

	if opts.PartitionExpr == "" {
		return slice, nil
	}

	dimension := partition.Dimension{
		Name: opts.PartitionName,
		Expr: opts.PartitionExpr,
	}
	if dimension.Name == "" {
		dimension.Name = opts.PartitionExpr
	}

	switch {
	case opts.WindowStart != "":
		start, err := parseWindowTime(opts.WindowStart)
		if err != nil {
			return dwh.TableSlice{}, fmt.Errorf("invalid window-start: %w", err)
		}

		end, err := parseWindowTime(opts.WindowEnd)
		if err != nil {
			return dwh.TableSlice{}, fmt.Errorf("invalid window-end: %w", err)
		}

		dimension.Kind = partition.TimeWindowKind
		dimension.Window = partition.TimeWindow{Start: start, End: end}
	case opts.Keys != "":
		dimension.Kind = partition.CategoricalKind
		dimension.Keys = strings.Split(opts.Keys, ",")
	default:
		return dwh.TableSlice{}, fmt.Errorf("partition-expr requires either window-start/window-end or keys")
	}

	slice.PartitionDimensions = []partition.Dimension{dimension}
	return slice, nil
}

func parseWindowTime(value string) (time.Time, error) {
	parsed, err := values.FromString(value, typing.TimestampTZ)
	if err != nil {
		return time.Time{}, err
	}

	return typing.AssertType[time.Time](parsed)
}

func parseSchema(schema string) (map[string]typing.KindDetails, error) {
	if schema == "" {
		return nil, fmt.Errorf("write requires --schema, e.g. the_date:timestamp_tz,color:string,value:int")
	}

	kinds := make(map[string]typing.KindDetails)
	for _, pair := range strings.Split(schema, ",") {
		name, kindName, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("schema entry %q is not name:kind", pair)
		}

		kind, err := typing.KindFromString(kindName)
		if err != nil {
			return nil, err
		}

		kinds[name] = kind
	}

	return kinds, nil
}
