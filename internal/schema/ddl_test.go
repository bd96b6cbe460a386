package schema

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func ddlObjects() []Object {
	return []Object{
		{
			Name: "riders",
			Fields: []Field{
				{Label: "id", Type: TypeInt, Primary: true, AutoIncrement: true},
				{Label: "name", Type: TypeText, Required: true},
				{Label: "rating", Type: TypeReal},
			},
		},
		{
			Name: "trips",
			Fields: []Field{
				{Label: "id", Type: TypeInt, Primary: true, AutoIncrement: true},
				{Label: "rider_id", Type: TypeInt, Required: true, Refers: "riders.id"},
				{Label: "status", Type: TypeText, Required: true},
				{Label: "active", Type: TypeBool},
				{Label: "requested_at", Type: TypeDateTime, Required: true},
			},
		},
	}
}

func renderDDL(t *testing.T, d Dialect) []byte {
	t.Helper()
	var stmts []string
	for _, o := range ddlObjects() {
		ddl, err := o.DDL(d)
		require.NoError(t, err)
		stmts = append(stmts, ddl)
	}
	return []byte(strings.Join(stmts, "\n\n") + "\n")
}

func TestDDLGoldenMySQL(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "ddl_mysql", renderDDL(t, DialectMySQL))
}

func TestDDLGoldenSQLite(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "ddl_sqlite", renderDDL(t, DialectSQLite))
}

func TestDDLUnknownDialect(t *testing.T) {
	_, err := ddlObjects()[0].DDL(Dialect("oracle"))
	require.Error(t, err)
}

func TestDDLEmptyObject(t *testing.T) {
	_, err := Object{Name: "empty"}.DDL(DialectSQLite)
	require.Error(t, err)
}
