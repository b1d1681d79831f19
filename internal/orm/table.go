package orm

import "fmt"

// Metadata describes the table a repository reads and writes.
type Metadata struct {
	TableName  string   `json:"table_name"`
	PrimaryKey string   `json:"primary_key"`
	Columns    []string `json:"columns"`
}

// Validate reports metadata that cannot back a repository.
func (m Metadata) Validate() error {
	if m.TableName == "" {
		return fmt.Errorf("table name is required")
	}
	if m.PrimaryKey == "" {
		return ErrNoPrimaryKey
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", m.TableName)
	}
	if !m.HasColumn(m.PrimaryKey) {
		return fmt.Errorf("primary key %s is not a column of %s", m.PrimaryKey, m.TableName)
	}
	return nil
}

func (m Metadata) HasColumn(column string) bool {
	for _, c := range m.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// QualifiedColumns returns every column prefixed with the table name so that
// selects stay unambiguous when other tables are joined in.
func (m Metadata) QualifiedColumns() []string {
	cols := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		cols[i] = m.TableName + "." + c
	}
	return cols
}

func (m Metadata) PrimaryKeyColumn() Column[string] {
	return Column[string]{Name: m.PrimaryKey, Table: m.TableName}
}
