// dataset_loader.go
package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pierrec/lz4"

	"github.com/HatsuSumi/Racehorse-Memorial/domain/models"
)

// datasetExtensions are tried in order when resolving a year's file.
var datasetExtensions = []string{".json", ".json.gz", ".json.lz4", ".zip"}

// LoadYearRows reads the dataset for one year from dataDir, accepting
// plain or compressed JSON. The file is <year>.json plus an optional
// archive extension.
func LoadYearRows(dataDir string, year int) ([]models.Row, error) {
	for _, ext := range datasetExtensions {
		path := filepath.Join(dataDir, strconv.Itoa(year)+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %v", path, err)
		}
		raw, err := unpackDataset(path, data)
		if err != nil {
			return nil, fmt.Errorf("unpack dataset %s: %v", path, err)
		}
		return DecodeRows(raw)
	}
	return nil, fmt.Errorf("no dataset file for year %d in %s", year, dataDir)
}

// FetchYearRows retrieves a year's dataset over HTTP. The context
// carries the caller's timeout; the core itself never schedules or
// retries anything.
func FetchYearRows(ctx context.Context, baseURL string, year int) ([]models.Row, error) {
	url := fmt.Sprintf("%s/%d.json", strings.TrimRight(baseURL, "/"), year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %v", url, err)
	}
	return DecodeRows(data)
}

// unpackDataset decompresses by extension: gzip, lz4 or zip (largest
// member wins). Plain files pass through.
func unpackDataset(path string, data []byte) ([]byte, error) {
	switch filepath.Ext(path) {
	case ".gz":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		return io.ReadAll(gr)
	case ".lz4":
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case ".zip":
		return unpackZipDataset(data)
	}
	return data, nil
}

func unpackZipDataset(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var largest *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		return nil, fmt.Errorf("zip archive holds no files")
	}
	rc, err := largest.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// DecodeRows parses a dataset: a JSON array of flat objects. A
// non-array payload, a non-object row or a cell that is neither
// string, number nor null is a structural error, unlike messy cell
// text which the parsers tolerate downstream.
func DecodeRows(data []byte) ([]models.Row, error) {
	var payload []interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("dataset is not a JSON array: %v", err)
	}

	rows := make([]models.Row, 0, len(payload))
	for i, item := range payload {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("row %d is not an object", i)
		}
		row := models.Row{}
		for key, value := range obj {
			switch v := value.(type) {
			case string:
				row[key] = v
			case float64:
				row[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case nil:
				// absent cell
			default:
				return nil, fmt.Errorf("row %d: column %q holds unsupported value type %T", i, key, value)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
