package schema

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavor for generated DDL.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

func columnType(d Dialect, ft FieldType) string {
	switch d {
	case DialectMySQL:
		switch ft {
		case TypeInt:
			return "BIGINT"
		case TypeText:
			return "VARCHAR(255)"
		case TypeReal:
			return "DOUBLE"
		case TypeBool:
			return "TINYINT(1)"
		case TypeDateTime:
			return "DATETIME"
		}
	case DialectSQLite:
		switch ft {
		case TypeInt:
			return "INTEGER"
		case TypeText:
			return "TEXT"
		case TypeReal:
			return "REAL"
		case TypeBool:
			return "INTEGER"
		case TypeDateTime:
			return "TEXT"
		}
	}
	return ""
}

// DDL renders the object as one CREATE TABLE IF NOT EXISTS statement.
func (o Object) DDL(d Dialect) (string, error) {
	if d != DialectMySQL && d != DialectSQLite {
		return "", fmt.Errorf("unknown dialect %q", d)
	}
	if o.Name == "" || len(o.Fields) == 0 {
		return "", fmt.Errorf("object %q has no fields", o.Name)
	}

	var cols []string
	var constraints []string

	for _, f := range o.Fields {
		typ := columnType(d, f.Type)
		if typ == "" {
			return "", fmt.Errorf("%s.%s: unknown field type %q", o.Name, f.Label, f.Type)
		}

		switch {
		case f.Primary && f.AutoIncrement && d == DialectSQLite:
			// sqlite requires the rowid alias form for auto increment.
			cols = append(cols, fmt.Sprintf("    %s INTEGER PRIMARY KEY AUTOINCREMENT", f.Label))
		case f.Primary && f.AutoIncrement:
			cols = append(cols, fmt.Sprintf("    %s %s NOT NULL AUTO_INCREMENT", f.Label, typ))
			constraints = append(constraints, fmt.Sprintf("    PRIMARY KEY (%s)", f.Label))
		case f.Primary:
			cols = append(cols, fmt.Sprintf("    %s %s NOT NULL", f.Label, typ))
			constraints = append(constraints, fmt.Sprintf("    PRIMARY KEY (%s)", f.Label))
		case f.Required:
			cols = append(cols, fmt.Sprintf("    %s %s NOT NULL", f.Label, typ))
		default:
			cols = append(cols, fmt.Sprintf("    %s %s", f.Label, typ))
		}

		if table, column, ok := refersParts(f.Refers); ok {
			constraints = append(constraints,
				fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s(%s)", f.Label, table, column))
		}
	}

	body := strings.Join(append(cols, constraints...), ",\n")
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);", o.Name, body), nil
}
