package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/linesaver/internal/config"
	"github.com/san-kum/linesaver/internal/motion"
	"github.com/san-kum/linesaver/internal/session"
)

type ExportData struct {
	Config *config.Config  `json:"config"`
	Seed   int64           `json:"seed"`
	Frames []session.Frame `json:"frames"`
	Ring   []motion.Line   `json:"ring"`
	Lit    int             `json:"lit"`
}

// ExportJSON writes a whole session to w as a single JSON document.
func ExportJSON(w io.Writer, cfg *config.Config, result *session.Result) error {
	data := ExportData{
		Config: cfg,
		Seed:   result.Seed,
		Frames: result.Frames,
		Ring:   result.Lines,
		Lit:    result.Stats.Lit,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, cfg *config.Config, result *session.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportJSON(file, cfg, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
