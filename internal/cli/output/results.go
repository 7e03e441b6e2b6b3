package output

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Result is a fully read result set.
type Result struct {
	Columns []string
	Rows    [][]any
}

// CollectRows reads every row of rows. The caller still owns rows.
func CollectRows(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// Convert []byte to string for readability
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Records returns the rows as column-keyed maps.
func (res *Result) Records() []map[string]any {
	records := make([]map[string]any, len(res.Rows))
	for i, row := range res.Rows {
		rec := make(map[string]any, len(res.Columns))
		for j, col := range res.Columns {
			rec[col] = row[j]
		}
		records[i] = rec
	}
	return records
}

// RenderResult writes res in the effective mode.
func (r *Renderer) RenderResult(res *Result) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return writeJSON(r.out, res.Records())
	case ModeYAML:
		return writeYAML(r.out, res.yamlNode())
	case ModeCSV:
		_, err := fmt.Fprintln(r.out, res.table(table.StyleDefault).RenderCSV())
		return err
	case ModeMarkdown:
		if len(res.Rows) == 0 {
			r.Println("(0 rows)")
			return nil
		}
		_, err := fmt.Fprintln(r.out, res.table(table.StyleDefault).RenderMarkdown())
		return err
	default:
		if len(res.Rows) == 0 {
			r.Println(r.styles.Muted.Render("(0 rows)"))
			return nil
		}
		t := res.table(table.StyleLight)
		r.Println(t.Render())
		r.Println(r.styles.Muted.Render(fmt.Sprintf("(%d rows)", len(res.Rows))))
		return nil
	}
}

// RenderValue writes a structured value as JSON or YAML, or with %v otherwise.
func (r *Renderer) RenderValue(v any) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return writeJSON(r.out, v)
	case ModeYAML:
		return writeYAML(r.out, v)
	default:
		_, err := fmt.Fprintln(r.out, v)
		return err
	}
}

// table keeps column names as returned by the driver.
func (res *Result) table(style table.Style) table.Writer {
	style.Format.Header = text.FormatDefault
	t := table.NewWriter()
	t.SetStyle(style)
	header := make(table.Row, len(res.Columns))
	for i, col := range res.Columns {
		header[i] = col
	}
	t.AppendHeader(header)
	for _, row := range res.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = FormatValue(v)
		}
		t.AppendRow(out)
	}
	return t
}

// yamlNode keeps column order, which a map would lose.
func (res *Result) yamlNode() *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range res.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range res.Columns {
			var val yaml.Node
			if err := val.Encode(row[i]); err != nil {
				val = yaml.Node{Kind: yaml.ScalarNode, Value: FormatValue(row[i])}
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: col}, &val)
		}
		seq.Content = append(seq.Content, m)
	}
	return seq
}

// FormatValue renders a scanned value for text output.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
