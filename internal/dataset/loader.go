package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/normalizer"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// Source columns.
const (
	ColName         = "NOME_CENTRO_SAUDE"
	ColStreetType   = "TIPO_LOGRADOURO_CS"
	ColStreetName   = "NOME_LOGRADOURO_CS"
	ColNumber       = "NUMERO_IMOVEL_CS"
	ColNeighborhood = "NOME_BAIRRO_POPULAR_CS"
	ColPhone        = "TELEFONE_CENTRO_SAUDE"
	ColDistrict     = "DISTRITO_SANITARIO"
)

// RequiredColumns must all be present in the header. Other columns are ignored.
var RequiredColumns = []string{
	ColName,
	ColStreetType,
	ColStreetName,
	ColNumber,
	ColNeighborhood,
	ColPhone,
	ColDistrict,
}

var (
	ErrMissingColumn = errors.New("required column missing")
	ErrInvalidUTF8   = errors.New("input is not valid UTF-8")
	ErrEmptySource   = errors.New("dataset has no header")
)

const utf8BOM = "\ufeff"

// LoadError is returned when a dataset cannot be read under any strategy.
// It is fatal at startup.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Strategy is one delimiter/encoding combination to parse a source with.
type Strategy struct {
	Name   string
	Comma  rune
	Decode func([]byte) ([]byte, error)
}

// Strategies are tried in order; the error of the last one is reported.
var Strategies = []Strategy{
	{Name: "semicolon/utf-8", Comma: ';', Decode: decodeUTF8},
	{Name: "comma/latin-1", Comma: ',', Decode: decodeLatin1},
}

// Report describes what happened to the source rows.
type Report struct {
	Strategy   string `json:"strategy"`
	Rows       int    `json:"rows"`
	Dropped    int    `json:"dropped"`
	Duplicates int    `json:"duplicates"`
	Kept       int    `json:"kept"`
}

// Parse cleans the rows of a source file. Records without a name or address
// are dropped and duplicate names keep their first occurrence.
func Parse(data []byte) ([]models.HealthCenter, Report, error) {
	var lastErr error
	for _, s := range Strategies {
		records, report, err := parseWith(data, s)
		if err == nil {
			return records, report, nil
		}
		lastErr = fmt.Errorf("%s: %w", s.Name, err)
	}
	return nil, Report{}, lastErr
}

func parseWith(data []byte, s Strategy) ([]models.HealthCenter, Report, error) {
	report := Report{Strategy: s.Name}

	decoded, err := s.Decode(data)
	if err != nil {
		return nil, report, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = s.Comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, report, ErrEmptySource
	}
	if err != nil {
		return nil, report, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, report, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, report, fmt.Errorf("read rows: %w", err)
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	seen := make(map[string]struct{}, len(rows))
	records := make([]models.HealthCenter, 0, len(rows))
	for _, row := range rows {
		report.Rows++

		rec := models.HealthCenter{
			Name:         field(row, ColName),
			StreetType:   field(row, ColStreetType),
			StreetName:   field(row, ColStreetName),
			Number:       field(row, ColNumber),
			Neighborhood: field(row, ColNeighborhood),
			Phone:        FormatPhones(field(row, ColPhone)),
			District:     field(row, ColDistrict),
		}
		rec.Address = FormatAddress(rec.StreetType, rec.StreetName, rec.Number, rec.Neighborhood)

		if rec.Name == "" || strings.TrimSpace(rec.Address) == "" {
			report.Dropped++
			continue
		}
		if _, dup := seen[rec.Name]; dup {
			report.Duplicates++
			continue
		}
		seen[rec.Name] = struct{}{}
		records = append(records, rec)
	}
	report.Kept = len(records)

	return records, report, nil
}

func decodeUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return data, nil
}

func decodeLatin1(data []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(data)
}

// Loader reads dataset files and keeps the built datasets keyed by absolute
// path, so repeated loads of one source share a single immutable Dataset.
type Loader struct {
	normalizer *normalizer.TextNormalizer
	logger     *zap.Logger
	cache      *lru.Cache[string, *Dataset]
}

// NewLoader creates a Loader holding up to cacheSize datasets.
func NewLoader(tn *normalizer.TextNormalizer, cacheSize int, logger *zap.Logger) (*Loader, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *Dataset](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &Loader{
		normalizer: tn,
		logger:     logger,
		cache:      cache,
	}, nil
}

// Load returns the dataset at path. Failures are *LoadError.
func (l *Loader) Load(path string) (*Dataset, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if ds, ok := l.cache.Get(key); ok {
		return ds, nil
	}

	l.logger.Info("Loading dataset", zap.String("path", key))

	data, err := os.ReadFile(key)
	if err != nil {
		l.logger.Error("Cannot read dataset", zap.String("path", key), zap.Error(err))
		return nil, &LoadError{Source: key, Err: err}
	}

	records, report, err := Parse(data)
	if err != nil {
		l.logger.Error("Cannot parse dataset", zap.String("path", key), zap.Error(err))
		return nil, &LoadError{Source: key, Err: err}
	}

	ds := New(records, l.normalizer)
	ds.Report = report
	l.cache.Add(key, ds)

	l.logger.Info("Dataset loaded",
		zap.String("strategy", report.Strategy),
		zap.Int("rows", report.Rows),
		zap.Int("kept", report.Kept),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("dropped", report.Dropped))

	return ds, nil
}
