// Command lattice reads and writes field values of host objects from the
// command line.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
)

const rootUsage = `lattice - hierarchical field values over flat attribute stores

USAGE:
  lattice <command> [flags]

COMMANDS:
  read             Print the value tree of an object as JSON
  write            Store a JSON value map on an object
  delete-field     Remove every key owned by one field of an object
  purge            Remove every attribute of an object
  ensure-schema    Create the PostgreSQL tables (postgres backend only)
  types            List the registered field types
  help             Show help for any command

ENVIRONMENT:
  LATTICE_BACKEND, LATTICE_PG_DSN, LATTICE_SCHEMA, LATTICE_MAX_DEPTH,
  LATTICE_POST_TABLE, LATTICE_TERM_TABLE, LATTICE_USER_TABLE,
  LATTICE_PAGE_SIZE, LATTICE_LOG_LEVEL, AWS_PROFILE. A .env file in the
  working directory is loaded first.
`

const objectFlagsUsage = `  -backend <name>      memory, dynamodb or postgres (default: $LATTICE_BACKEND or memory)
  -pg.dsn <dsn>        PostgreSQL connection string
  -aws.profile <name>  AWS shared config profile
  -max-depth <n>       Deepest allowed container nesting (default: 32)
  -kind <kind>         Object kind: post, term or user (default: post)
  -id <id>             Object id (required)
`

const readUsage = `read FLAGS:
  -schema <file>       YAML field schema (default: $LATTICE_SCHEMA)
  -group <id>          Field group id (default: first group)
  -flat                Print flat storage keys instead of a tree
` + objectFlagsUsage

const writeUsage = `write FLAGS:
  -schema <file>       YAML field schema (default: $LATTICE_SCHEMA)
  -group <id>          Field group id (default: first group)
  -in <file>           JSON values, "-" for stdin (default: -)
  -nested              Input is a value tree rather than flat storage keys
` + objectFlagsUsage

const deleteFieldUsage = `delete-field FLAGS:
  -schema <file>       YAML field schema (default: $LATTICE_SCHEMA)
  -group <id>          Field group id (default: first group)
  -field <name>        Root field name (required)
` + objectFlagsUsage

const purgeUsage = `purge FLAGS:
` + objectFlagsUsage

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("lattice", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "read":
		return cmdRead(cmdArgs)
	case "write":
		return cmdWrite(cmdArgs)
	case "delete-field":
		return cmdDeleteField(cmdArgs)
	case "purge":
		return cmdPurge(cmdArgs)
	case "ensure-schema":
		return cmdEnsureSchema(cmdArgs)
	case "types":
		return cmdTypes()
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "read":
		fmt.Print(readUsage)
	case "write":
		fmt.Print(writeUsage)
	case "delete-field":
		fmt.Print(deleteFieldUsage)
	case "purge", "ensure-schema":
		fmt.Print(purgeUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}
