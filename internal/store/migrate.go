package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/gradekit/ent/schema"
)

const (
	responseTable = "response_events"
	llmTable      = "llm_request_events"
)

// eventSchemas maps each table to the ent schema that describes it.
var eventSchemas = []struct {
	table  string
	schema ent.Interface
}{
	{responseTable, entschema.ResponseEvent{}},
	{llmTable, entschema.LLMRequestEvent{}},
}

// Tables builds the migration tables from the ent schema descriptors, in
// the shape entc would generate: an auto-increment id, mixin fields first,
// then the schema's own fields and indexes.
func Tables() ([]*sqlschema.Table, error) {
	tables := make([]*sqlschema.Table, 0, len(eventSchemas))
	for _, es := range eventSchemas {
		t, err := buildTable(es.table, es.schema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(name string, s ent.Interface) (*sqlschema.Table, error) {
	id := &sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &sqlschema.Table{
		Name:       name,
		Columns:    []*sqlschema.Column{id},
		PrimaryKey: []*sqlschema.Column{id},
	}

	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, s.Fields()...)

	byName := make(map[string]*sqlschema.Column, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		t.Columns = append(t.Columns, c)
		byName[d.Name] = c
	}

	for _, idx := range s.Indexes() {
		d := idx.Descriptor()
		cols := make([]*sqlschema.Column, 0, len(d.Fields))
		for _, f := range d.Fields {
			c, ok := byName[f]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown field %q", name, f)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &sqlschema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

// migrate creates or alters the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := Tables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
