package generate

import (
	"regexp"
	"strings"
	"text/template"

	"github.com/nordicdata/snowgen/internal/schema"
)

// UnknownTable is the table name used when neither an override nor a
// schema title is available.
const UnknownTable = "UNKNOWN_TABLE"

var whitespaceRun = regexp.MustCompile(`\s+`)

// TableName resolves the Bronze table name: a non-empty override wins,
// then the schema title upper-cased with whitespace runs collapsed to
// underscores, then UnknownTable. The caller is expected to upper-case
// overrides by convention; the value is used verbatim.
func TableName(doc *schema.Document, override string) string {
	if override != "" {
		return override
	}
	if doc != nil && doc.Title != "" {
		return strings.ToUpper(whitespaceRun.ReplaceAllString(doc.Title, "_"))
	}
	return UnknownTable
}

const ddlTemplate = `-- Table: {{.TableName}}
-- {{.HeaderComment}}
CREATE OR ALTER TABLE {{.TableName}} (
{{- range $i, $c := .Columns}}
    {{columnLine $c}}{{if ne (inc $i) (len $.Columns)}},{{end}}
{{- end}}
)
{{- if .Description}}
CHANGE_TRACKING = TRUE
COMMENT = '{{.Description}}'
{{- end}}
;
{{- if .PrimaryKey}}

-- Suggested primary key, verify before applying:
-- ALTER TABLE {{.TableName}} ADD PRIMARY KEY ({{join .PrimaryKey ", "}});
{{- end}}
`

var ddlTmpl = template.Must(template.New("ddl").Funcs(template.FuncMap{
	"columnLine": columnLine,
	"join":       strings.Join,
	"inc":        func(i int) int { return i + 1 },
}).Parse(ddlTemplate))

type ddlData struct {
	TableName     string
	Description   string // raw schema description, may be empty
	HeaderComment string // description or "No description"
	Columns       []ColumnSpec
	PrimaryKey    []string
}

// columnLine formats one column definition. COMMENT text is embedded
// verbatim between single quotes: a description containing a quote yields
// invalid SQL. That matches the original tool's behavior and is left
// uncorrected rather than guessing an escape policy.
func columnLine(c ColumnSpec) string {
	var b strings.Builder
	b.WriteString(c.SQLName)
	b.WriteString(" ")
	b.WriteString(c.SQLType)
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Comment != "" {
		b.WriteString(" COMMENT '")
		b.WriteString(c.Comment)
		b.WriteString("'")
	}
	return b.String()
}

// DDL renders the Bronze CREATE OR ALTER TABLE statement for doc.
func DDL(doc *schema.Document, tableNameOverride string) string {
	data := ddlData{
		TableName:     TableName(doc, tableNameOverride),
		Description:   doc.Description,
		HeaderComment: doc.Description,
		Columns:       Columns(doc),
		PrimaryKey:    PrimaryKeyCandidates(doc),
	}
	if data.HeaderComment == "" {
		data.HeaderComment = "No description"
	}

	var b strings.Builder
	// The template only fails on unknown fields, which is a programming
	// error caught by the package tests.
	_ = ddlTmpl.Execute(&b, data)
	return b.String()
}

// GenerateDDL parses raw schema text and renders the Bronze DDL.
// Invalid JSON yields a *schema.ParseError and an empty SQL string, so a
// caller showing previous output can clear it rather than leave it stale.
func GenerateDDL(text, tableNameOverride string) (string, error) {
	doc, err := schema.Parse(text)
	if err != nil {
		return "", err
	}
	return DDL(doc, tableNameOverride), nil
}
