package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

// CLIArgs are the options for a single stored procedure call.
type CLIArgs struct {
	Procedure  string   `arg:"positional,required" help:"Stored procedure name" placeholder:"PROCEDURE"`
	Config     string   `arg:"-c,--config,env:SPROC_CONFIG" default:"sproc.yaml" help:"Connections config" placeholder:"FILE"`
	Connection string   `arg:"--connection,env:SPROC_CONNECTION" help:"Named connection, default connection when empty" placeholder:"NAME"`
	Payload    string   `arg:"--payload" help:"JSON request payload file, - for stdin" placeholder:"FILE"`
	Params     []string `arg:"-p,--param,separate" help:"Request field" placeholder:"KEY=VALUE"`
	Tokens     []string `arg:"-t,--token,separate" help:"Raw placeholder token, disables request fields" placeholder:"TOKEN"`
	Values     []string `arg:"-v,--value,separate" help:"Positional bind value" placeholder:"VALUE"`
	JSON       bool     `arg:"--json" help:"Write rows as JSON"`
}

// Version implements go-arg's Versioned.
func (CLIArgs) Version() string {
	return "sproc " + version
}

func loadEnvFiles() error {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// do nothing, it's not error if .env file does not exist
			return nil
		}

		return fmt.Errorf("Cannot load .env file: %w", err)
	}
	return nil
}

func parseArgs() (*CLIArgs, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, err
	}

	var args CLIArgs
	arg.MustParse(&args)
	return &args, nil
}
