package refdata

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/dealcraft/dealcraft/internal/model"
)

// FileProvider reads records from JSON or YAML files. Files are re-read on
// every call so edits are picked up without a restart.
type FileProvider struct {
	PartnersPath  string
	CompaniesPath string
}

// NewFileProvider returns a FileProvider for the given paths.
func NewFileProvider(partnersPath, companiesPath string) *FileProvider {
	return &FileProvider{PartnersPath: partnersPath, CompaniesPath: companiesPath}
}

// Partners reads the partner roster.
func (f *FileProvider) Partners(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	if err := readFile(ctx, f.PartnersPath, &partners); err != nil {
		return nil, eris.Wrap(err, "refdata: read partners file")
	}
	return partners, nil
}

// Companies reads the preloaded companies.
func (f *FileProvider) Companies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := readFile(ctx, f.CompaniesPath, &companies); err != nil {
		return nil, eris.Wrap(err, "refdata: read companies file")
	}
	return companies, nil
}

func readFile(ctx context.Context, path string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	return decode(path, data, dst)
}

// decode picks YAML for .yaml/.yml paths and JSON otherwise.
func decode(name string, data []byte, dst any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, dst); err != nil {
			return eris.Wrapf(err, "decode yaml %s", name)
		}
	default:
		if err := json.Unmarshal(data, dst); err != nil {
			return eris.Wrapf(err, "decode json %s", name)
		}
	}
	return nil
}
