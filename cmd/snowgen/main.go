// cmd/snowgen converts one Infor M3 JSON Schema into Snowflake SQL
// artifacts: the Bronze CREATE OR ALTER TABLE statement and the Silver
// dynamic-table query. With -out it writes <TABLE>.sql and
// <TABLE>_silver.sql; without it both artifacts print to stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nordicdata/snowgen/internal/generate"
	"github.com/nordicdata/snowgen/internal/schema"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("snowgen: ")

	var (
		schemaPath = flag.String("schema", "", "path to the JSON Schema file (\"-\" for stdin)")
		tableName  = flag.String("table", "", "table name override (upper-cased)")
		outDir     = flag.String("out", "", "directory to write .sql files into (default: print to stdout)")
		warehouse  = flag.String("warehouse", "", "warehouse name substituted into the Silver query")
		sourceDB   = flag.String("source", "", "database.schema prefix of the Bronze table in the Silver query")
		ddlOnly    = flag.Bool("ddl-only", false, "generate only the Bronze DDL")
		silverOnly = flag.Bool("silver-only", false, "generate only the Silver query")
	)
	flag.Parse()

	if *schemaPath == "" {
		log.Fatal("missing -schema (use \"-\" for stdin)")
	}
	if *ddlOnly && *silverOnly {
		log.Fatal("-ddl-only and -silver-only are mutually exclusive")
	}

	text, err := readSchema(*schemaPath)
	if err != nil {
		log.Fatalf("reading schema: %v", err)
	}

	override := strings.ToUpper(strings.TrimSpace(*tableName))
	doc, err := schema.Parse(text)
	if err != nil {
		log.Fatalf("parsing schema: %v", err)
	}
	table := generate.TableName(doc, override)

	opts := generate.Options{
		Warehouse:      *warehouse,
		SourceDatabase: *sourceDB,
	}

	wrote := 0
	if !*silverOnly {
		ddl := generate.DDL(doc, override)
		if err := emit(*outDir, table+".sql", ddl); err != nil {
			log.Fatalf("writing DDL: %v", err)
		}
		wrote++
	}
	if !*ddlOnly {
		silver := generate.Silver(doc, override, opts)
		if err := emit(*outDir, table+"_silver.sql", silver); err != nil {
			log.Fatalf("writing Silver query: %v", err)
		}
		wrote++
	}

	if *outDir != "" {
		fmt.Printf("snowgen: generated %d artifact(s) for %s in %s\n", wrote, table, *outDir)
	}
}

func readSchema(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// emit writes sql to dir/name, or prints it to stdout when dir is empty.
func emit(dir, name, sql string) error {
	if dir == "" {
		fmt.Printf("-- %s\n%s\n", name, sql)
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(sql), 0644)
}
