package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSilver_Supplier(t *testing.T) {
	sql := GenerateSilver(supplierSchema, "", Options{})

	want := `CREATE OR REPLACE DYNAMIC TABLE SUPPLIER
    TARGET_LAG = 'DOWNSTREAM'
    REFRESH_MODE = INCREMENTAL
    INITIALIZE = ON_CREATE
    WAREHOUSE = <WAREHOUSE_NAME>
AS
WITH BRONZE AS (
    SELECT
        CONO,
        TRIM(SUNO) AS SUNO,
        TRIM(SUNM) AS SUNM,
        VARIATIONNUMBER,
        TIMESTAMP,
        DELETED,
        ROW_NUMBER() OVER (PARTITION BY CONO, SUNO ORDER BY VARIATIONNUMBER DESC) AS ROW_NUM
    FROM <BRONZE_DATABASE>.<BRONZE_SCHEMA>.SUPPLIER
)
SELECT * EXCLUDE (ACCOUNTINGENTITY, VARIATIONNUMBER, TIMESTAMP, DELETED, ARCHIVED, ROW_NUM)
FROM BRONZE
WHERE ROW_NUM = 1
  AND DELETED = FALSE;
`
	assert.Equal(t, want, sql)
}

func TestGenerateSilver_TrimsOnlyStringColumns(t *testing.T) {
	sql := GenerateSilver(`{"title": "Mixed", "properties": {
		"CODE": {"type": "string", "x-position": 1},
		"QTY": {"type": "integer", "x-position": 2},
		"TS": {"type": "string", "format": "date-time", "x-position": 3},
		"BLOB": {"type": "object", "x-position": 4}
	}}`, "", Options{})

	assert.Contains(t, sql, "TRIM(CODE) AS CODE")
	assert.Contains(t, sql, "TRIM(BLOB) AS BLOB") // objects map to STRING
	assert.NotContains(t, sql, "TRIM(QTY)")
	assert.NotContains(t, sql, "TRIM(TS)") // DATETIME, not STRING
}

func TestGenerateSilver_OptionsSubstitutePlaceholders(t *testing.T) {
	sql := GenerateSilver(supplierSchema, "", Options{
		Warehouse:      "TRANSFORM_WH",
		SourceDatabase: "RAW.M3",
	})

	assert.Contains(t, sql, "WAREHOUSE = TRANSFORM_WH")
	assert.Contains(t, sql, "FROM RAW.M3.SUPPLIER")
	assert.NotContains(t, sql, "<WAREHOUSE_NAME>")
}

func TestGenerateSilver_PlaceholderOnMissingInput(t *testing.T) {
	sql := GenerateSilver("", "", Options{})
	assert.True(t, strings.HasPrefix(sql, "--"), "placeholder must be a SQL comment, got %q", sql)
	assert.Contains(t, sql, "no schema loaded")
}

func TestGenerateSilver_PlaceholderOnInvalidJSON(t *testing.T) {
	sql := GenerateSilver(`{"title":`, "", Options{})
	assert.True(t, strings.HasPrefix(sql, "-- Silver query could not be generated:"), "got %q", sql)
	assert.NotContains(t, sql, "DYNAMIC TABLE")
}

func TestGenerateSilver_IndependentOfDDL(t *testing.T) {
	// The Silver step re-derives everything from the schema text; calling
	// it without ever generating DDL works and matches a later DDL's
	// column order.
	silver := GenerateSilver(supplierSchema, "", Options{})
	ddl, err := GenerateDDL(supplierSchema, "")
	assert.NoError(t, err)

	for _, name := range []string{"CONO", "SUNO", "SUNM", "VARIATIONNUMBER", "TIMESTAMP", "DELETED"} {
		assert.Contains(t, silver, name)
		assert.Contains(t, ddl, name)
	}
}
