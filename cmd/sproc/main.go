package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/mgutz/sproc"
	"github.com/mgutz/sproc/config"
	runner "github.com/mgutz/sproc/sqlx-runner"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// main is THE entry point
func main() {
	args, err := parseArgs()
	if err != nil {
		exitWith(err)
	}
	if err := run(context.Background(), args, os.Stdin, os.Stdout); err != nil {
		exitWith(err)
	}
}

func exitWith(err error) {
	fmt.Fprintln(os.Stderr, ansi.Color(err.Error(), "red"))
	os.Exit(1)
}

func run(ctx context.Context, args *CLIArgs, stdin io.Reader, w io.Writer) error {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return err
	}

	conns, err := runner.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer conns.Close()

	payload, err := readPayload(args, stdin)
	if err != nil {
		return err
	}

	call, err := buildCall(sproc.New(conns), args, payload)
	if err != nil {
		return err
	}

	rows, err := call.Execute(ctx)
	if err != nil {
		return err
	}
	return writeRows(w, rows, args.JSON)
}

// readPayload builds the request from --payload then --param fields.
func readPayload(args *CLIArgs, stdin io.Reader) (*sproc.Payload, error) {
	payload := sproc.NewPayload()
	switch args.Payload {
	case "":
	case "-":
		p, err := sproc.ParsePayload(stdin)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		payload = p
	default:
		f, err := os.Open(args.Payload)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		p, err := sproc.ParsePayload(f)
		if err != nil {
			return nil, fmt.Errorf("read payload %s: %w", args.Payload, err)
		}
		payload = p
	}

	for _, param := range args.Params {
		kv := strings.SplitN(param, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("param %q must be KEY=VALUE", param)
		}
		payload.Set(kv[0], kv[1])
	}
	return payload, nil
}

// buildCall uses raw tokens when given, otherwise request fields. Request
// fields are bound by name unless positional values are given.
func buildCall(b *sproc.Builder, args *CLIArgs, payload *sproc.Payload) (*sproc.CallBuilder, error) {
	if len(args.Tokens) > 0 && payload.Len() > 0 {
		return nil, errors.New("use request fields or --token, not both")
	}

	pb := b.Procedure(args.Procedure).Connection(args.Connection)

	var call *sproc.CallBuilder
	if len(args.Tokens) > 0 {
		call = pb.Params(sproc.Raw(args.Tokens...))
	} else {
		call = pb.Params(sproc.Named(payload))
	}

	switch {
	case len(args.Values) > 0:
		values := make([]interface{}, len(args.Values))
		for i, v := range args.Values {
			values[i] = v
		}
		call.Values(values...)
	case payload.Len() > 0:
		call.Values(payload.Map())
	}
	return call, nil
}
