package generate

import (
	"strings"
	"text/template"

	"github.com/nordicdata/snowgen/internal/schema"
)

// Default placeholder tokens left in the Silver query when no deployment
// values are configured, so the output stays copy-and-edit friendly.
const (
	DefaultWarehouse      = "<WAREHOUSE_NAME>"
	DefaultSourceDatabase = "<BRONZE_DATABASE>.<BRONZE_SCHEMA>"
)

// housekeepingColumns are the M3 change-data-capture columns excluded from
// the Silver projection after deduplication.
var housekeepingColumns = []string{
	"ACCOUNTINGENTITY",
	"VARIATIONNUMBER",
	"TIMESTAMP",
	"DELETED",
	"ARCHIVED",
	"ROW_NUM",
}

// Options carries the deployment names substituted into the Silver
// template. Zero values keep the placeholder tokens.
type Options struct {
	// Warehouse names the warehouse the dynamic table refreshes on.
	Warehouse string
	// SourceDatabase is the <database>.<schema> prefix of the Bronze table.
	SourceDatabase string
}

func (o Options) withDefaults() Options {
	if o.Warehouse == "" {
		o.Warehouse = DefaultWarehouse
	}
	if o.SourceDatabase == "" {
		o.SourceDatabase = DefaultSourceDatabase
	}
	return o
}

const silverTemplate = `CREATE OR REPLACE DYNAMIC TABLE {{.TableName}}
    TARGET_LAG = 'DOWNSTREAM'
    REFRESH_MODE = INCREMENTAL
    INITIALIZE = ON_CREATE
    WAREHOUSE = {{.Warehouse}}
AS
WITH BRONZE AS (
    SELECT
{{- range .Selections}}
        {{.}},
{{- end}}
        ROW_NUMBER() OVER (PARTITION BY CONO, SUNO ORDER BY VARIATIONNUMBER DESC) AS ROW_NUM
    FROM {{.SourceDatabase}}.{{.TableName}}
)
SELECT * EXCLUDE ({{join .Excluded ", "}})
FROM BRONZE
WHERE ROW_NUM = 1
  AND DELETED = FALSE;
`

var silverTmpl = template.Must(template.New("silver").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(silverTemplate))

type silverData struct {
	TableName      string
	Warehouse      string
	SourceDatabase string
	Selections     []string
	Excluded       []string
}

// selection renders one projected expression of the Bronze CTE. Textual
// columns are trimmed — M3 sources pad fixed-width fields with whitespace —
// everything else passes through bare.
func selection(c ColumnSpec) string {
	if c.SQLType == "STRING" {
		return "TRIM(" + c.SQLName + ") AS " + c.SQLName
	}
	return c.SQLName
}

// Silver renders the Silver-layer dynamic-table query for doc. It derives
// the column sequence independently of DDL: the two artifacts are separate
// user actions over the same parsed schema.
func Silver(doc *schema.Document, tableNameOverride string, opts Options) string {
	opts = opts.withDefaults()
	cols := Columns(doc)
	selections := make([]string, 0, len(cols))
	for _, c := range cols {
		selections = append(selections, selection(c))
	}

	data := silverData{
		TableName:      TableName(doc, tableNameOverride),
		Warehouse:      opts.Warehouse,
		SourceDatabase: opts.SourceDatabase,
		Selections:     selections,
		Excluded:       housekeepingColumns,
	}

	var b strings.Builder
	_ = silverTmpl.Execute(&b, data)
	return b.String()
}

// GenerateSilver parses raw schema text and renders the Silver query. It
// never fails: absent or unparseable input yields an explanatory SQL
// comment instead, since the Silver step can be triggered before any
// schema has been loaded.
func GenerateSilver(text, tableNameOverride string, opts Options) string {
	if strings.TrimSpace(text) == "" {
		return "-- Silver query could not be generated: no schema loaded"
	}
	doc, err := schema.Parse(text)
	if err != nil {
		return "-- Silver query could not be generated: " + err.Error()
	}
	return Silver(doc, tableNameOverride, opts)
}
