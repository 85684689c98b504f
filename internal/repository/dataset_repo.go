package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"sentiviz/internal/model"

	"github.com/xuri/excelize/v2"
)

// DatasetRepository загружает наборы данных графиков из CSV, XLSX или по URL
type DatasetRepository struct {
	client *http.Client
	logger *log.Logger
}

// NewDatasetRepository создает новый экземпляр репозитория
func NewDatasetRepository(client *http.Client, logger *log.Logger) *DatasetRepository {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &DatasetRepository{client: client, logger: logger}
}

// table - заголовок и строки источника
type table struct {
	source  string
	header  map[string]int
	records [][]string
}

// LoadWordFrequencies загружает данные столбчатой диаграммы (words,count,emotion)
func (r *DatasetRepository) LoadWordFrequencies(ctx context.Context, src string) (*LoadResult[model.WordFrequency], error) {
	t, err := r.readTable(ctx, src)
	if err != nil {
		return nil, err
	}
	wordCol, err := t.column("words", "word")
	if err != nil {
		return nil, err
	}
	countCol, err := t.column("count")
	if err != nil {
		return nil, err
	}
	emotionCol, err := t.column("emotion")
	if err != nil {
		return nil, err
	}

	res := &LoadResult[model.WordFrequency]{Source: src}
	res.Rows = make([]model.WordFrequency, 0, len(t.records))
	for i, record := range t.records {
		line := i + 2 // строка 1 - заголовок
		count, issue := number(record, countCol, "count", line)
		row := model.WordFrequency{
			Word:    cell(record, wordCol),
			Count:   count,
			Emotion: model.ParseEmotion(cell(record, emotionCol)),
		}
		if issue == nil {
			issue = invalid(row.Validate(), line, "words", row.Word)
		}
		if issue != nil {
			res.Issues = append(res.Issues, *issue)
		}
		res.Rows = append(res.Rows, row)
	}
	r.logResult(src, len(res.Rows), res.Issues)
	return res, nil
}

// LoadSurveyTerms загружает данные пузырьковой диаграммы (word,occurrence,emotion)
func (r *DatasetRepository) LoadSurveyTerms(ctx context.Context, src string) (*LoadResult[model.SurveyTerm], error) {
	t, err := r.readTable(ctx, src)
	if err != nil {
		return nil, err
	}
	wordCol, err := t.column("word", "words")
	if err != nil {
		return nil, err
	}
	occCol, err := t.column("occurrence")
	if err != nil {
		return nil, err
	}
	emotionCol, err := t.column("emotion")
	if err != nil {
		return nil, err
	}

	res := &LoadResult[model.SurveyTerm]{Source: src}
	res.Rows = make([]model.SurveyTerm, 0, len(t.records))
	for i, record := range t.records {
		line := i + 2
		occ, issue := number(record, occCol, "occurrence", line)
		row := model.SurveyTerm{
			Word:       cell(record, wordCol),
			Occurrence: occ,
			Emotion:    model.ParseEmotion(cell(record, emotionCol)),
		}
		if issue == nil {
			issue = invalid(row.Validate(), line, "word", row.Word)
		}
		if issue != nil {
			res.Issues = append(res.Issues, *issue)
		}
		res.Rows = append(res.Rows, row)
	}
	r.logResult(src, len(res.Rows), res.Issues)
	return res, nil
}

func (r *DatasetRepository) logResult(src string, rows int, issues []RowIssue) {
	r.logger.Printf("dataset %s loaded: %d rows", src, rows)
	for _, issue := range issues {
		r.logger.Printf("dataset %s: %s", src, issue)
	}
}

// readTable читает источник целиком. Локальные файлы и URL различаются по
// схеме, формат - по расширению.
func (r *DatasetRepository) readTable(ctx context.Context, src string) (*table, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(src) {
		data, err = r.fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, &LoadError{Source: src, Err: err}
	}

	var rows [][]string
	switch ext := strings.ToLower(path.Ext(stripQuery(src))); ext {
	case ".csv", "":
		rows, err = parseCSV(data)
	case ".xlsx":
		rows, err = parseXLSX(data)
	default:
		return nil, &LoadError{Source: src, Err: fmt.Errorf("%w: extension %q", ErrUnsupportedSource, ext)}
	}
	if err != nil {
		return nil, &LoadError{Source: src, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Source: src, Err: ErrEmptySource}
	}

	t := &table{source: src, header: make(map[string]int), records: rows[1:]}
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := t.header[name]; !ok {
			t.header[name] = i
		}
	}
	return t, nil
}

func (r *DatasetRepository) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func parseCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // короткие строки дают NaN, а не ошибку
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// parseXLSX читает первый лист книги
func parseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func (t *table) column(names ...string) (int, error) {
	for _, n := range names {
		if i, ok := t.header[n]; ok {
			return i, nil
		}
	}
	return -1, &LoadError{Source: t.source, Column: names[0], Err: ErrMissingColumn}
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// number разбирает числовую ячейку. Пустые, отсутствующие, нечисловые и
// бесконечные значения дают NaN и RowIssue.
func number(record []string, i int, column string, line int) (float64, *RowIssue) {
	raw := cell(record, i)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), &RowIssue{Line: line, Column: column, Value: raw}
	}
	return v, nil
}

// invalid превращает ошибку Validate в RowIssue
func invalid(err error, line int, column, value string) *RowIssue {
	if err == nil {
		return nil
	}
	return &RowIssue{Line: line, Column: column, Value: value, Reason: err.Error()}
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func stripQuery(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		return src[:i]
	}
	return src
}
