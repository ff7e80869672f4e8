package matrix

// Package matrix dumps probability matrices as tab separated tables: a
// header row of column labels after a leading tab, then one row per label
// with log2 values formatted %0.6f, "-inf" for impossible events.

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"yu-val-weiss/hmmtag/alg/hmm"
	nlp "yu-val-weiss/hmmtag/nlp/types"
)

type Table struct {
	Rows, Columns []string
	Values        [][]float64
}

func FormatValue(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%0.6f", v)
}

func Write(writer io.Writer, table *Table) error {
	bw := bufio.NewWriter(writer)
	bw.WriteString("\t" + strings.Join(table.Columns, "\t") + "\n")
	for i, label := range table.Rows {
		bw.WriteString(label)
		for _, v := range table.Values[i] {
			bw.WriteByte('\t')
			bw.WriteString(FormatValue(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func Read(reader io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty matrix")
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\t\r"), "\t")
	if len(header) == 0 || header[0] != "" {
		return nil, fmt.Errorf("header must start with a tab")
	}
	table := &Table{Columns: header[1:]}
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\t\r")
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != len(table.Columns)+1 {
			return nil, fmt.Errorf("line %d: expected %d values, got %d", lineNum, len(table.Columns), len(fields)-1)
		}
		values := make([]float64, len(table.Columns))
		for j, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNum, err)
			}
			values[j] = v
		}
		table.Rows = append(table.Rows, fields[0])
		table.Values = append(table.Values, values)
	}
	return table, scanner.Err()
}

func FromTransitions(m *hmm.TransitionMatrix) *Table {
	return &Table{m.From.Values(), m.To.Values(), m.LogProbs}
}

func FromEmissions(m *hmm.EmissionMatrix) *Table {
	return &Table{m.Morphemes.Values(), m.Tags.Values(), m.LogProbs}
}

func (t *Table) Transitions() *hmm.TransitionMatrix {
	m := hmm.NewTransitionMatrix(t.Rows, t.Columns)
	for i, from := range t.Rows {
		for j, to := range t.Columns {
			m.Set(nlp.Tag(from), nlp.Tag(to), t.Values[i][j])
		}
	}
	return m
}

func (t *Table) Emissions() *hmm.EmissionMatrix {
	m := hmm.NewEmissionMatrix(t.Rows, t.Columns)
	for i, morpheme := range t.Rows {
		for j, tag := range t.Columns {
			m.Set(nlp.Morpheme(morpheme), nlp.Tag(tag), t.Values[i][j])
		}
	}
	return m
}

func WriteFile(filename string, table *Table) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, table)
}

func ReadFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
